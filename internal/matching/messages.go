package matching

import "maps"

// MessageKind keys the localized status message table.
type MessageKind string

// Status message kinds
const (
	MessageSuccess       MessageKind = "success"
	MessageNoMatch       MessageKind = "no_match"
	MessageUnsupported   MessageKind = "unsupported_user_type"
	MessageMissingFields MessageKind = "missing_fields"
	MessageInternalError MessageKind = "internal_error"
)

var defaultMessages = map[MessageKind]string{
	MessageSuccess:       "تم العثور على حل مناسب",
	MessageNoMatch:       "لم يتم العثور على حالة مطابقة، يرجى إعادة صياغة المشكلة أو التواصل مع المشرف",
	MessageUnsupported:   "نوع الجهة غير مدعوم",
	MessageMissingFields: "الرجاء ملء جميع الحقول المطلوبة",
	MessageInternalError: "حدث خطأ غير متوقع",
}

// Messages is a localized status message table.
type Messages map[MessageKind]string

// DefaultMessages returns a fresh copy of the built-in Arabic messages.
func DefaultMessages() Messages {
	return Messages(maps.Clone(defaultMessages))
}

// With returns a copy of m with the non-empty overrides applied.
func (m Messages) With(overrides map[string]string) Messages {
	out := Messages(maps.Clone(map[MessageKind]string(m)))
	if out == nil {
		out = Messages{}
	}
	for k, v := range overrides {
		if v != "" {
			out[MessageKind(k)] = v
		}
	}
	return out
}

// Get returns the message for kind, falling back to the built-in text and
// finally to the kind name itself.
func (m Messages) Get(kind MessageKind) string {
	if v, ok := m[kind]; ok && v != "" {
		return v
	}
	if v, ok := defaultMessages[kind]; ok {
		return v
	}
	return string(kind)
}
