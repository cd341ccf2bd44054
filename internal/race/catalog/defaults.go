package catalog

var defaultAliases = []Alias{
	{"abu dhabi", "abu-dhabi-grand-prix"},
	{"yas marina", "abu-dhabi-grand-prix"},
	{"australia", "australian-grand-prix"},
	{"australian", "australian-grand-prix"},
	{"melbourne", "australian-grand-prix"},
	{"austria", "austrian-grand-prix"},
	{"austrian", "austrian-grand-prix"},
	{"spielberg", "austrian-grand-prix"},
	{"azerbaijan", "azerbaijan-grand-prix"},
	{"baku", "azerbaijan-grand-prix"},
	{"bahrain", "bahrain-grand-prix"},
	{"sakhir", "bahrain-grand-prix"},
	{"belgium", "belgian-grand-prix"},
	{"belgian", "belgian-grand-prix"},
	{"spa", "belgian-grand-prix"},
	{"brazil", "sao-paulo-grand-prix"},
	{"brazilian", "sao-paulo-grand-prix"},
	{"sao paulo", "sao-paulo-grand-prix"},
	{"interlagos", "sao-paulo-grand-prix"},
	{"canada", "canadian-grand-prix"},
	{"canadian", "canadian-grand-prix"},
	{"montreal", "canadian-grand-prix"},
	{"china", "chinese-grand-prix"},
	{"chinese", "chinese-grand-prix"},
	{"shanghai", "chinese-grand-prix"},
	{"emilia romagna", "emilia-romagna-grand-prix"},
	{"imola", "emilia-romagna-grand-prix"},
	{"britain", "british-grand-prix"},
	{"british", "british-grand-prix"},
	{"silverstone", "british-grand-prix"},
	{"hungary", "hungarian-grand-prix"},
	{"hungarian", "hungarian-grand-prix"},
	{"budapest", "hungarian-grand-prix"},
	{"italy", "italian-grand-prix"},
	{"italian", "italian-grand-prix"},
	{"monza", "italian-grand-prix"},
	{"japan", "japanese-grand-prix"},
	{"japanese", "japanese-grand-prix"},
	{"suzuka", "japanese-grand-prix"},
	{"las vegas", "las-vegas-grand-prix"},
	{"vegas", "las-vegas-grand-prix"},
	{"mexico", "mexico-city-grand-prix"},
	{"mexican", "mexico-city-grand-prix"},
	{"mexico city", "mexico-city-grand-prix"},
	{"miami", "miami-grand-prix"},
	{"monaco", "monaco-grand-prix"},
	{"netherlands", "dutch-grand-prix"},
	{"dutch", "dutch-grand-prix"},
	{"zandvoort", "dutch-grand-prix"},
	{"qatar", "qatar-grand-prix"},
	{"lusail", "qatar-grand-prix"},
	{"saudi arabia", "saudi-arabian-grand-prix"},
	{"saudi", "saudi-arabian-grand-prix"},
	{"jeddah", "saudi-arabian-grand-prix"},
	{"singapore", "singapore-grand-prix"},
	{"marina bay", "singapore-grand-prix"},
	{"spain", "spanish-grand-prix"},
	{"spanish", "spanish-grand-prix"},
	{"barcelona", "spanish-grand-prix"},
	{"usa", "united-states-grand-prix"},
	{"us", "united-states-grand-prix"},
	{"united states", "united-states-grand-prix"},
	{"austin", "united-states-grand-prix"},
	{"cota", "united-states-grand-prix"},
}

var defaultCatalog = mustNew(defaultAliases)

func mustNew(aliases []Alias) Catalog {
	c, err := New(aliases)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog, it is built once at package init and shared.
func Default() Catalog {
	return defaultCatalog
}
