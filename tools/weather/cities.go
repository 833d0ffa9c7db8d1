package weather

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

// queryName maps a localized city name onto the name OpenWeather knows.
func queryName(city string) string {
	cityOnce.Do(func() {
		cityTable = make(map[string]string)
		if err := yaml.Unmarshal(citiesRaw, &cityTable); err != nil {
			panic(err)
		}
	})
	name := strings.TrimSpace(city)
	if translated, ok := cityTable[name]; ok {
		return translated
	}
	return name
}
