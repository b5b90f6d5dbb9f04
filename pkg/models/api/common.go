package api

// ValidationResult mirrors the outcome of record validation on the wire.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Error is the JSON body returned for request-level failures.
type Error struct {
	Error string `json:"error"`
}
