package policy

import "strings"

// Verdict is the classification of a single top-level statement.
type Verdict int

const (
	Allowed Verdict = iota
	BadImport
	BadExport
	BadEnum
	BadOther
)

var verdictNames = [...]string{
	Allowed:   "allowed",
	BadImport: "bad_import",
	BadExport: "bad_export",
	BadEnum:   "bad_enum",
	BadOther:  "bad_other",
}

func (v Verdict) String() string {
	if int(v) < 0 || int(v) >= len(verdictNames) {
		return "unknown"
	}
	return verdictNames[v]
}

// Outcome is the result of classifying one statement. StatementType is set
// only for BadOther.
type Outcome struct {
	Verdict       Verdict
	StatementType string
}

func (o Outcome) Allowed() bool { return o.Verdict == Allowed }

// MessageID selects the message template for a violation. Allowed outcomes
// have no message.
func (o Outcome) MessageID() MessageID {
	switch o.Verdict {
	case BadImport:
		return MessageImportTypes
	case BadExport:
		return MessageExportTypes
	case BadEnum:
		return MessageNoEnums
	case BadOther:
		return MessageNoNonTypes
	default:
		return ""
	}
}

// MessageData returns the template substitutions for the outcome.
func (o Outcome) MessageData(cfg *Config) map[string]string {
	data := map[string]string{}
	switch o.Verdict {
	case BadExport:
		data["allowed"] = AllowedPhrase(cfg.BanEnums())
	case BadOther:
		data["allowed"] = AllowedPhrase(cfg.BanEnums())
		data["type"] = o.StatementType
	}
	return data
}

type MessageID string

const (
	MessageExportTypes MessageID = "exportTypes"
	MessageImportTypes MessageID = "importTypes"
	MessageNoEnums     MessageID = "noEnums"
	MessageNoNonTypes  MessageID = "noNonTypes"
)

var messageTemplates = map[MessageID]string{
	MessageExportTypes: "Type-only files should only export {allowed}.",
	MessageImportTypes: "Type-only files should only use type imports (e.g. `import type { }`).",
	MessageNoEnums:     "Enums are not allowed by your type-only-files configuration.",
	MessageNoNonTypes:  "Type-only files should only declare {allowed}. Found a {type}.",
}

// MessageIDs lists the catalog in a stable order.
func MessageIDs() []MessageID {
	return []MessageID{MessageExportTypes, MessageImportTypes, MessageNoEnums, MessageNoNonTypes}
}

// AllowedPhrase describes what a type-only file may contain.
func AllowedPhrase(banEnums bool) string {
	if banEnums {
		return "types or interfaces"
	}
	return "types, interfaces, or enums"
}

// FormatMessage fills {placeholder} slots of the template for id. Unknown
// placeholders are left as written.
func FormatMessage(id MessageID, data map[string]string) string {
	tmpl, ok := messageTemplates[id]
	if !ok {
		return string(id)
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
