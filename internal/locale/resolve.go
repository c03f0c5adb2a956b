package locale

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// ErrUnsupportedLocale is returned when a locale tag cannot be resolved
// to a formatter locale
var ErrUnsupportedLocale = errors.New("unsupported locale")

var supportedLocales = sync.OnceValue(func() []monday.Locale {
	list := monday.ListLocales()
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
})

// Resolve maps a BCP 47 tag such as "de-DE" or "en" to a formatter locale.
// A missing region is inferred from the language; an unknown region falls
// back to another region of the same language.
func Resolve(tag string) (monday.Locale, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, tag, err)
	}

	base, _ := parsed.Base()
	region, conf := parsed.Region()

	if conf != language.No {
		want := monday.Locale(base.String() + "_" + region.String())
		for _, have := range supportedLocales() {
			if have == want {
				return have, nil
			}
		}
	}

	prefix := base.String() + "_"
	for _, have := range supportedLocales() {
		if strings.HasPrefix(string(have), prefix) {
			return have, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, tag)
}

// dateLayouts holds the weekday-short, 2-digit day, 2-digit month, numeric
// year layout per locale, then per language
var dateLayouts = map[string]string{
	"en_US": "Mon, 01/02/2006",
	"en_CA": "Mon, 2006-01-02",
	"en":    "Mon, 02/01/2006",
	"de":    "Mon., 02.01.2006",
	"fr_CA": "Mon 2006-01-02",
	"fr":    "Mon 02/01/2006",
	"es":    "Mon, 02/01/2006",
	"it":    "Mon 02/01/2006",
	"pt":    "Mon, 02/01/2006",
	"nl":    "Mon 02-01-2006",
	"da":    "Mon 02.01.2006",
	"nb":    "Mon 02.01.2006",
	"fi":    "Mon 02.01.2006",
	"sv":    "Mon 2006-01-02",
	"ru":    "Mon, 02.01.2006",
	"uk":    "Mon, 02.01.2006",
	"pl":    "Mon, 02.01.2006",
	"cs":    "Mon 02.01.2006",
	"hu":    "2006. 01. 02., Mon",
	"ja":    "2006/01/02(Mon)",
	"zh":    "2006/01/02 Mon",
	"ko":    "2006. 01. 02. (Mon)",
}

const fallbackLayout = "Mon, 2006-01-02"

func layoutFor(loc monday.Locale) string {
	if layout, ok := dateLayouts[string(loc)]; ok {
		return layout
	}
	lang, _, _ := strings.Cut(string(loc), "_")
	if layout, ok := dateLayouts[lang]; ok {
		return layout
	}
	return fallbackLayout
}
