package classify

// rule maps a category to the lowercase keywords that select it. Rules are
// evaluated in order and the first keyword hit wins, so earlier categories
// take precedence when a keyword appears in more than one list.
type rule struct {
	category string
	keywords []string
}

var rules = []rule{
	{"Transporte", []string{"uber", "99", "rappi", "lime", "cittamobi", "posto", "gasolina", "estacionamento"}},
	{"Alimentação", []string{"ifood", "rappi", "mcdonalds", "bk", "burger king", "restaurante", "padaria", "supermercado", "mercearia"}},
	{"Compras", []string{"amazon", "mercado livre", "shopee", "shein", "cea", "renner", "magazine luiza", "americanas"}},
	{"Saúde", []string{"farmacia", "drogaria", "unimed", "bradesco saude", "plano de saude", "medico"}},
	{"Moradia", []string{"aluguel", "condominio", "enel", "sabesp", "internet", "iptu"}},
	{"Lazer", []string{"spotify", "netflix", "hbo", "disney+", "cinema", "show", "ingresso", "bar", "evento"}},
	{"Educação", []string{"udemy", "curso", "faculdade", "escola"}},
}
