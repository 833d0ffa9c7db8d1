package flights

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/airports.yaml
var airportsRaw []byte

var (
	airportOnce  sync.Once
	airportTable map[string]string
)

// airportCode looks up a city name in the embedded table.
func airportCode(city string) (string, bool) {
	airportOnce.Do(func() {
		airportTable = make(map[string]string)
		// the table ships with the binary, a parse failure is a build defect
		if err := yaml.Unmarshal(airportsRaw, &airportTable); err != nil {
			panic(err)
		}
	})
	code, ok := airportTable[strings.ToLower(strings.TrimSpace(city))]
	return code, ok
}
