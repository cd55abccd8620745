package quote

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultFolioPrefix starts every generated folio.
const DefaultFolioPrefix = "COT"

// NextFolio returns the next folio for the month of now, formatted as
// PREFIX-YYYYMM-NNN. The sequence is one past the highest already issued
// for that prefix and month; folios of other months are ignored.
func NextFolio(prefix string, now time.Time, existing []string) string {
	if prefix == "" {
		prefix = DefaultFolioPrefix
	}
	period := now.Format("200601")
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix+"-"+period+"-") + `(\d+)$`)

	highest := 0
	for _, folio := range existing {
		m := pattern.FindStringSubmatch(strings.TrimSpace(folio))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("%s-%s-%03d", prefix, period, highest+1)
}
