package domain

// ProvisioningKind identifies the downstream activation an order line needs.
type ProvisioningKind string

const (
	ProvisioningKindDomain  ProvisioningKind = "domain"
	ProvisioningKindHosting ProvisioningKind = "hosting"
)
