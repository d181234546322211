// Package locality maps Latin-script Kazakhstan place names to the Cyrillic
// spellings stored in the company registry.
package locality

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	textutil "ayala/pkg/platform/strings"
)

// Alias pairs a folded Latin spelling with its canonical registry name.
type Alias struct {
	Latin string
	Name  string
}

var translations = map[string]string{
	// cities
	"almaty":          "Алматы",
	"astana":          "Астана",
	"nur-sultan":      "Нур-Султан",
	"nursultan":       "Нур-Султан",
	"shymkent":        "Шымкент",
	"aktobe":          "Актобе",
	"taraz":           "Тараз",
	"pavlodar":        "Павлодар",
	"ust-kamenogorsk": "Усть-Каменогорск",
	"oskemen":         "Оскемен",
	"semey":           "Семей",
	"atyrau":          "Атырау",
	"kostanay":        "Костанай",
	"petropavl":       "Петропавл",
	"karaganda":       "Караганда",
	"aktau":           "Актау",
	"kyzylorda":       "Кызылорда",
	"uralsk":          "Уральск",
	"oral":            "Орал",
	"turkestan":       "Туркестан",
	"ekibastuz":       "Экибастуз",
	"akmola":          "Акмола",

	// regions
	"akmola region":           "Акмолинская область",
	"akmola oblast":           "Акмолинская область",
	"aktobe region":           "Актюбинская область",
	"aktobe oblast":           "Актюбинская область",
	"almaty region":           "Алматинская область",
	"almaty oblast":           "Алматинская область",
	"atyrau region":           "Атырауская область",
	"atyrau oblast":           "Атырауская область",
	"east kazakhstan":         "Восточно-Казахстанская область",
	"east kazakhstan region":  "Восточно-Казахстанская область",
	"jambyl region":           "Жамбылская область",
	"jambyl oblast":           "Жамбылская область",
	"zhambyl region":          "Жамбылская область",
	"zhambyl oblast":          "Жамбылская область",
	"karaganda region":        "Карагандинская область",
	"karaganda oblast":        "Карагандинская область",
	"kostanay region":         "Костанайская область",
	"kostanay oblast":         "Костанайская область",
	"kyzylorda region":        "Кызылординская область",
	"kyzylorda oblast":        "Кызылординская область",
	"mangystau region":        "Мангыстауская область",
	"mangystau oblast":        "Мангыстауская область",
	"north kazakhstan":        "Северо-Казахстанская область",
	"north kazakhstan region": "Северо-Казахстанская область",
	"pavlodar region":         "Павлодарская область",
	"pavlodar oblast":         "Павлодарская область",
	"south kazakhstan":        "Южно-Казахстанская область",
	"south kazakhstan region": "Южно-Казахстанская область",
	"west kazakhstan":         "Западно-Казахстанская область",
	"west kazakhstan region":  "Западно-Казахстанская область",

	// smaller towns
	"stepnogorsk":     "Степногорск",
	"kokshetau":       "Кокшетау",
	"kokchetav":       "Кокшетау",
	"temirtau":        "Темиртау",
	"rudny":           "Рудный",
	"zhezkazgan":      "Жезказган",
	"jezkazgan":       "Жезказган",
	"balkhash":        "Балхаш",
	"taldykorgan":     "Талдыкорган",
	"kapchagai":       "Капчагай",
	"kentau":          "Кентау",
	"arys":            "Арыс",
	"zhanaozen":       "Жанаозен",
	"beyneu":          "Бейнеу",
	"fort-shevchenko": "Форт-Шевченко",
	"lisakovsk":       "Лисаковск",
	"arkalyk":         "Аркалык",
	"shalkar":         "Шалкар",
	"esil":            "Есиль",
	"makinsk":         "Макинск",
	"schuchinsk":      "Щучинск",
	"ridder":          "Риддер",
	"zyryanovsk":      "Зыряновск",
	"ayagoz":          "Аягоз",
	"kurchatov":       "Курчатов",
	"aktogay":         "Актогай",
	"saran":           "Саран",
	"shahtinsk":       "Шахтинск",
	"priozersk":       "Приозерск",
	"baikonur":        "Байконур",
	"kazalinsk":       "Казалинск",
	"aralsk":          "Аральск",
}

var (
	aliases  []Alias
	names    []string
	matchers []aliasMatcher
)

type aliasMatcher struct {
	re   *regexp.Regexp
	name string
}

func init() {
	seen := make(map[string]struct{})
	for latin, name := range translations {
		aliases = append(aliases, Alias{Latin: latin, Name: name})
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	// Longest alias first so "almaty region" wins over "almaty".
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i].Latin) != len(aliases[j].Latin) {
			return len(aliases[i].Latin) > len(aliases[j].Latin)
		}
		return aliases[i].Latin < aliases[j].Latin
	})
	sort.Strings(names)

	for _, a := range aliases {
		matchers = append(matchers, aliasMatcher{
			re:   regexp.MustCompile(`(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(a.Latin) + `(?:[^\p{L}\p{N}]|$)`),
			name: a.Name,
		})
	}
}

// Translate returns the registry spelling for a place name. An exact alias
// match wins; otherwise the longest alias occurring as whole words inside name
// is used. Unknown names are returned trimmed but otherwise unchanged.
func Translate(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	folded := textutil.Fold(trimmed)
	if n, ok := translations[folded]; ok {
		return n
	}
	for _, m := range matchers {
		if m.re.MatchString(folded) {
			return m.name
		}
	}
	return trimmed
}

// Aliases lists every Latin alias, longest first.
func Aliases() []Alias {
	out := make([]Alias, len(aliases))
	copy(out, aliases)
	return out
}

// Names lists the distinct canonical registry names in sorted order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Latin lists every supported Latin spelling in alphabetical order.
func Latin() []string {
	out := make([]string, 0, len(translations))
	for latin := range translations {
		out = append(out, latin)
	}
	sort.Strings(out)
	return out
}

// Variations returns the spellings worth searching for name: the input itself,
// its registry translation, and the lower and title cased forms of both.
// Duplicates are dropped and the result is sorted.
func Variations(name string) []string {
	if strings.TrimSpace(name) == "" {
		return []string{}
	}
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	candidates := []string{name, lower.String(name), title.String(name)}
	if translated := Translate(name); translated != name {
		candidates = append(candidates, translated, lower.String(translated), title.String(translated))
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
