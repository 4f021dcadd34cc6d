package gateway

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"

	"github.com/bnema/containerdesk/internal/domain"
)

// Order field names accepted in the fields.<name> config section.
const (
	FieldDocNumber     = "doc_number"
	FieldStatus        = "status"
	FieldAddress       = "address"
	FieldContainerID   = "container_id"
	FieldContainerType = "container_type"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldLastAction    = "last_action"
	FieldActionType    = "action_type"
	FieldETA           = "eta"
	FieldDriverName    = "driver_name"
	FieldDaysOnSite    = "days_on_site"
)

// DefaultFields projects the sheet's column headers onto order fields. An
// empty expression leaves the field unset.
var DefaultFields = map[string]string{
	FieldDocNumber:     `"מספר תעודה"`,
	FieldStatus:        `"סטטוס"`,
	FieldAddress:       `"כתובת"`,
	FieldContainerID:   `"מכולה ירדה"`,
	FieldContainerType: `"סוג מכולה"`,
	FieldStartDate:     `"תאריך"`,
	FieldEndDate:       `"תאריך סיום"`,
	FieldLastAction:    "",
	FieldActionType:    `"סוג פעולה"`,
	FieldETA:           `"זמן הגעה משוער"`,
	FieldDriverName:    `"שם נהג"`,
	FieldDaysOnSite:    "",
}

type fieldMap map[string]*jmespath.JMESPath

func compileFields(overrides map[string]string) (fieldMap, error) {
	exprs := make(map[string]string, len(DefaultFields))
	for name, expr := range DefaultFields {
		exprs[name] = expr
	}
	for name, expr := range overrides {
		if _, ok := DefaultFields[name]; !ok {
			return nil, fmt.Errorf("unknown order field %q (known: %s)", name, strings.Join(knownFields(), ", "))
		}
		exprs[name] = strings.TrimSpace(expr)
	}

	compiled := make(fieldMap, len(exprs))
	for name, expr := range exprs {
		if expr == "" {
			continue
		}
		program, err := jmespath.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile expression for field %s: %w", name, err)
		}
		compiled[name] = program
	}

	return compiled, nil
}

func knownFields() []string {
	names := make([]string, 0, len(DefaultFields))
	for name := range DefaultFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m fieldMap) order(row map[string]any) domain.Order {
	return domain.Order{
		DocNumber:     m.text(FieldDocNumber, row),
		Status:        m.text(FieldStatus, row),
		Address:       m.text(FieldAddress, row),
		ContainerID:   m.text(FieldContainerID, row),
		ContainerType: m.text(FieldContainerType, row),
		StartDate:     m.text(FieldStartDate, row),
		EndDate:       m.text(FieldEndDate, row),
		LastAction:    m.text(FieldLastAction, row),
		ActionType:    m.text(FieldActionType, row),
		ETA:           m.text(FieldETA, row),
		DriverName:    m.text(FieldDriverName, row),
		DaysOnSite:    m.text(FieldDaysOnSite, row),
	}
}

// text evaluates one field. Evaluation errors and missing values both yield
// an empty string so a malformed row never breaks the session.
func (m fieldMap) text(name string, row map[string]any) string {
	program, ok := m[name]
	if !ok {
		return ""
	}

	value, err := program.Search(row)
	if err != nil {
		return ""
	}
	return stringify(value)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
