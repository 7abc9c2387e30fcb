package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/entitykit/entitykit/internal/lru"
	"github.com/entitykit/entitykit/utils"
)

// labelCacheSize bounds memoized attribute labels across all schemas
const labelCacheSize = 1024

type labelKey struct {
	schema *Schema
	attr   string
}

var (
	labelMu    sync.Mutex
	labelCache = lru.NewLRU[labelKey, string](labelCacheSize, nil)
)

// HumanAttributeName returns the display label of attr, "" for the base
// bucket. AttributeNames overrides win over the humanized field name.
func (s *Schema) HumanAttributeName(attr string) string {
	if attr == "base" {
		return ""
	}
	if s == nil {
		return utils.Humanize(attr)
	}
	if label, ok := s.AttributeNames[attr]; ok {
		return label
	}

	labelMu.Lock()
	defer labelMu.Unlock()
	return labelCache.GetOrAdd(labelKey{schema: s, attr: attr}, func() string {
		return utils.Humanize(attr)
	})
}

// HumanName returns the display name of the entity type, "LineItem" => "Line item"
func (s *Schema) HumanName() string {
	if s == nil {
		return ""
	}
	return utils.Humanize(ParamKey(s.Name))
}

// ParamName returns the snake cased type name, "LineItem" => "line_item"
func (s *Schema) ParamName() string {
	if s == nil {
		return ""
	}
	return ParamKey(s.Name)
}

// PluralName returns the plural snake cased type name, "LineItem" => "line_items"
func (s *Schema) PluralName() string {
	if s == nil {
		return ""
	}
	return inflection.Plural(ParamKey(s.Name))
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	var commonInitialismsForReplacer []string
	caser := cases.Title(language.Und)
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, caser.String(initialism))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

// ParamKey converts a Go style identifier into the snake cased key used in
// params, "EmployeeID" => "employee_id"
func ParamKey(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return fmt.Sprint(v)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	key := buf.String()
	smap.Store(name, key)
	return key
}
