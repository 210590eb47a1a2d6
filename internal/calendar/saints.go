package calendar

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// SaintPlaceholder is returned for month/day pairs without a saint, such as
// February 30.
const SaintPlaceholder = "Saint(e) du jour"

//go:embed saints.yaml
var saintsYAML []byte

var loadSaints = sync.OnceValue(func() map[int]map[int]string {
	var table map[int]map[int]string
	if err := yaml.Unmarshal(saintsYAML, &table); err != nil {
		panic(fmt.Sprintf("calendar: parse embedded saints table: %v", err))
	}
	return table
})

// SaintOfDay returns the saint commemorated on a month (1-12) and day
// (1-31). The table does not depend on the year.
func SaintOfDay(month, day int) string {
	if name, ok := loadSaints()[month][day]; ok {
		return name
	}
	return SaintPlaceholder
}
