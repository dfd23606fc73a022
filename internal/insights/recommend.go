package insights

import (
	"fmt"
	"math"
)

// Recommendation is a piece of spending advice shown on the analysis view.
type Recommendation struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var staticRecommendations = []Recommendation{
	{
		Icon:  "trending-up",
		Title: "Comece a investir",
		Text:  "Mesmo pequenas quantias podem crescer com o tempo. Explore opções de investimento de baixo risco para iniciar.",
	},
	{
		Icon:  "dollar-sign",
		Title: "Crie uma reserva de emergência",
		Text:  "Guarde um pouco a cada mês para cobrir despesas inesperadas. O ideal é ter o equivalente a 3-6 meses de seus custos.",
	},
}

// Recommend builds the recommendation list for the given category totals.
// When there is any outbound spend, the first entry calls out the top
// category with its rounded share of total spend; the two static
// recommendations always close the list.
func Recommend(totals []CategoryTotal) []Recommendation {
	var recs []Recommendation

	var total int64
	for _, ct := range totals {
		total += ct.Value
	}

	if len(totals) > 0 && total > 0 {
		top := totals[0]
		pct := int(math.Round(float64(top.Value) / float64(total) * 100))
		recs = append(recs, Recommendation{
			Icon:  "lightbulb",
			Title: fmt.Sprintf("Atenção aos gastos com %s!", top.Name),
			Text:  fmt.Sprintf("Você gastou cerca de %d%% do total de suas despesas nesta categoria. Que tal rever alguns custos?", pct),
		})
	}

	return append(recs, staticRecommendations...)
}
