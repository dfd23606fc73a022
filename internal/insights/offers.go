package insights

// Offer is a contextual product offer derived from spending patterns.
type Offer struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// autoInsuranceShare is the Transporte share of total outbound spend above
// which the auto insurance offer is shown.
const autoInsuranceShare = 0.30

// Offers returns the offers applicable to the given category totals. The
// auto insurance offer appears when transport spending exceeds 30% of the
// total; with no outbound spend there are no offers.
func Offers(totals []CategoryTotal) []Offer {
	var total, transporte int64
	for _, ct := range totals {
		total += ct.Value
		if ct.Name == "Transporte" {
			transporte = ct.Value
		}
	}

	offers := []Offer{}
	if total > 0 && float64(transporte)/float64(total) > autoInsuranceShare {
		offers = append(offers, Offer{
			Icon:  "car",
			Title: "Oferta Especial!",
			Text:  "Seguro Auto com 20% de desconto para você!",
		})
	}
	return offers
}
