package domain

// DomainAvailability is the registrar's answer to an availability check.
type DomainAvailability struct {
	Available bool `json:"available"`
	Premium   bool `json:"premium"`
}
