package hotels

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/cities.yaml
var citiesRaw []byte

var (
	cityOnce  sync.Once
	cityTable map[string]string
)

// cityCode resolves a free-text city into an Amadeus city code.
// Tries the exact lower-cased name first, then the cleaned city part.
func cityCode(city string) (string, bool) {
	cityOnce.Do(func() {
		cityTable = make(map[string]string)
		if err := yaml.Unmarshal(citiesRaw, &cityTable); err != nil {
			panic(err)
		}
	})
	name := strings.ToLower(strings.TrimSpace(city))
	if code, ok := cityTable[name]; ok {
		return code, true
	}
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
		if code, ok := cityTable[name]; ok {
			return code, true
		}
	}
	// a 3-letter upper-case input passes through as a city code
	upper := strings.ToUpper(strings.TrimSpace(city))
	if len(upper) == 3 && upper == strings.TrimSpace(city) {
		return upper, true
	}
	return "", false
}
