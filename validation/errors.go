package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/entitykit/entitykit/utils"
)

// Base is the bucket for messages that belong to the entity as a whole
const Base = "base"

// indexedKeyRegexp matches keys reported for array positions, e.g. "items[0]"
var indexedKeyRegexp = regexp.MustCompile(`\[\d+\]`)

// Labeler resolves the display label of an attribute
type Labeler interface {
	HumanAttributeName(attr string) string
}

// ExternalError is a field/detail pair reported by an external source,
// usually a JSON:API error object
type ExternalError struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// FullMessagesOptions full messages options
type FullMessagesOptions struct {
	// ForceBase drops attribute labels from every message
	ForceBase bool
}

// Errors keeps validation messages per attribute, in insertion order
type Errors struct {
	labeler  Labeler
	keys     []string
	messages map[string][]string
}

// NewErrors builds an aggregator seeded from initial, which may be a string,
// a list of strings and nested shapes, or a keyed structure of messages
func NewErrors(labeler Labeler, initial interface{}) *Errors {
	errs := &Errors{labeler: labeler, messages: map[string][]string{}}
	errs.merge(initial)
	return errs
}

func (errs *Errors) merge(initial interface{}) {
	switch value := initial.(type) {
	case nil:
	case string:
		if utils.IsPresent(value) {
			errs.Add(Base, strings.TrimSpace(value))
		}
	case []string:
		for _, msg := range value {
			errs.Add(Base, msg)
		}
	case []interface{}:
		for _, item := range value {
			if msg, ok := item.(string); ok {
				errs.Add(Base, msg)
			} else {
				errs.appendAll(NewErrors(errs.labeler, item))
			}
		}
	case map[string][]string:
		keyed := make(map[string]interface{}, len(value))
		for k, v := range value {
			keyed[k] = v
		}
		errs.mergeKeyed(keyed)
	case map[string]interface{}:
		errs.mergeKeyed(value)
	case *Errors:
		if value != nil {
			errs.appendAll(value)
		}
	}
}

// appendAll appends the messages of every bucket of other
func (errs *Errors) appendAll(other *Errors) {
	for _, key := range other.keys {
		if _, ok := errs.messages[key]; !ok {
			errs.keys = append(errs.keys, key)
		}
		errs.messages[key] = append(errs.messages[key], other.messages[key]...)
	}
}

// overwrite copies every bucket of other, replacing buckets with the same name
func (errs *Errors) overwrite(other *Errors) {
	for _, key := range other.keys {
		errs.set(key, append([]string(nil), other.messages[key]...))
	}
}

func (errs *Errors) mergeKeyed(keyed map[string]interface{}) {
	keys := make([]string, 0, len(keyed))
	for key := range keyed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	base := []string{}
	if msgs, ok := keyed[Base]; ok {
		base = append(base, toMessages(msgs)...)
	}
	for _, key := range keys {
		if indexedKeyRegexp.MatchString(key) {
			base = append(base, toMessages(keyed[key])...)
		}
	}
	errs.set(Base, base)

	for _, key := range keys {
		if key != Base && !indexedKeyRegexp.MatchString(key) {
			errs.set(key, toMessages(keyed[key]))
		}
	}
}

func toMessages(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		msgs := make([]string, 0, len(v))
		for _, item := range v {
			msgs = append(msgs, fmt.Sprint(item))
		}
		return msgs
	case nil:
		return []string{}
	default:
		return []string{fmt.Sprint(v)}
	}
}

func (errs *Errors) set(attr string, msgs []string) {
	if _, ok := errs.messages[attr]; !ok {
		errs.keys = append(errs.keys, attr)
	}
	errs.messages[attr] = msgs
}

// Add appends message to attr, returning the messages of attr
func (errs *Errors) Add(attr, message string) []string {
	if _, ok := errs.messages[attr]; !ok {
		errs.keys = append(errs.keys, attr)
	}
	errs.messages[attr] = append(errs.messages[attr], message)
	return errs.messages[attr]
}

// AddExternal adds every field/detail pair
func (errs *Errors) AddExternal(entries []ExternalError) {
	for _, entry := range entries {
		errs.Add(entry.Field, entry.Detail)
	}
}

// Clear removes every message
func (errs *Errors) Clear() {
	errs.keys = nil
	errs.messages = map[string][]string{}
}

// Get returns the messages of attr
func (errs *Errors) Get(attr string) []string {
	return errs.messages[attr]
}

// Attributes returns the attributes holding a message list, in insertion order
func (errs *Errors) Attributes() []string {
	return append([]string(nil), errs.keys...)
}

// Messages returns a copy of the messages per attribute
func (errs *Errors) Messages() map[string][]string {
	messages := make(map[string][]string, len(errs.messages))
	for attr, msgs := range errs.messages {
		messages[attr] = make([]string, len(msgs))
		copy(messages[attr], msgs)
	}
	return messages
}

// Len returns the number of messages over all attributes
func (errs *Errors) Len() int {
	total := 0
	for _, msgs := range errs.messages {
		total += len(msgs)
	}
	return total
}

// IsEmpty reports whether no attribute bucket exists and base holds nothing,
// an empty bucket still counts
func (errs *Errors) IsEmpty() bool {
	return len(errs.keys) == 0 && utils.IsBlank(errs.messages[Base])
}

// FullMessages returns the messages prefixed with attribute labels, humanized
func (errs *Errors) FullMessages(opts ...FullMessagesOptions) []string {
	var opt FullMessagesOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	full := []string{}
	for _, attr := range errs.keys {
		label := ""
		if !opt.ForceBase && attr != Base && errs.labeler != nil {
			label = errs.labeler.HumanAttributeName(attr)
		}

		for _, msg := range errs.messages[attr] {
			full = append(full, utils.Humanize(strings.TrimSpace(label+" "+msg)))
		}
	}
	return full
}

// Clone returns an independent copy sharing the labeler
func (errs *Errors) Clone() *Errors {
	clone := &Errors{labeler: errs.labeler, messages: map[string][]string{}}
	clone.overwrite(errs)
	return clone
}

// MarshalJSON encodes the messages per attribute
func (errs *Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(errs.messages)
}

// String joins the full messages
func (errs *Errors) String() string {
	return strings.Join(errs.FullMessages(), "; ")
}
