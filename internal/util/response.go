package util

// Envelope is the uniform {success, message?, <resource>?} response wrapper.
type Envelope map[string]any

func Fail(message string) Envelope {
	return Envelope{"success": false, "message": message}
}

func OK(key string, value any) Envelope {
	return Envelope{"success": true, key: value}
}

func Message(message string) Envelope {
	return Envelope{"success": true, "message": message}
}

func (e Envelope) With(key string, value any) Envelope {
	e[key] = value
	return e
}
