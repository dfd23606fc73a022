package models

// CategoryDisplay holds static presentation metadata for a category.
// Icon names follow the Lucide icon set used by the web client.
type CategoryDisplay struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Slug string `json:"slug"`
}

// CategoryOthers is the catch-all category for transactions that could not
// be matched to a known category.
const CategoryOthers = "Outros"

// CategorySalary labels all inbound transactions in the feed.
const CategorySalary = "Salário"

var categoryDisplays = map[string]CategoryDisplay{
	"Transporte":   {Name: "Transporte", Icon: "car", Slug: "transport"},
	"Alimentação":  {Name: "Alimentação", Icon: "utensils-crossed", Slug: "food"},
	"Compras":      {Name: "Compras", Icon: "shopping-bag", Slug: "shopping"},
	"Saúde":        {Name: "Saúde", Icon: "heart-pulse", Slug: "health"},
	"Moradia":      {Name: "Moradia", Icon: "home", Slug: "housing"},
	"Lazer":        {Name: "Lazer", Icon: "film", Slug: "leisure"},
	"Educação":     {Name: "Educação", Icon: "graduation-cap", Slug: "education"},
	"Pix":          {Name: "Pix", Icon: "zap", Slug: "pix"},
	CategoryOthers: {Name: CategoryOthers, Icon: "circle-dollar-sign", Slug: "others"},
	CategorySalary: {Name: CategorySalary, Icon: "arrow-down-left", Slug: "income"},
}

// DisplayFor resolves the presentation metadata for a transaction.
// Inbound transactions always display as Salário; unknown or missing
// categories fall back to Outros.
func DisplayFor(category *string, txType TransactionType) CategoryDisplay {
	if txType == TransactionTypeIn {
		return categoryDisplays[CategorySalary]
	}
	if category != nil {
		if d, ok := categoryDisplays[*category]; ok {
			return d
		}
	}
	return categoryDisplays[CategoryOthers]
}
