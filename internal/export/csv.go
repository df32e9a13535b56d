package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/teemow/calexport/internal/events"
)

// bom is the UTF-8 byte-order mark
const bom = "\ufeff"

var headers = map[string][]string{
	HeaderEnglish: {"calendar", "title", "start", "end", "description", "location"},
	HeaderChinese: {"日历名称", "日程名称", "开始时间", "结束时间", "日程描述", "地点"},
}

// Header returns the CSV header row for lang
func Header(lang string) ([]string, error) {
	if lang == "" {
		lang = HeaderEnglish
	}
	h, ok := headers[lang]
	if !ok {
		return nil, fmt.Errorf("unknown header language %q, must be one of: en, zh", lang)
	}
	return h, nil
}

// EncodeCSV writes the BOM, header and one quoted row per event to w.
// encoding/csv only quotes fields that need it, so rows are written by hand.
func EncodeCSV(w io.Writer, evs []events.Event, header []string) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(bom); err != nil {
		return err
	}
	if err := writeRow(bw, header); err != nil {
		return err
	}
	for _, ev := range evs {
		if err := writeRow(bw, ev.Fields()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(field)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
