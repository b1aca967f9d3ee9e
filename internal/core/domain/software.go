package domain

// Software stamps a message with the issuing implementation's name and version.
type Software struct {
	Name    string
	Version string
}

// Vendor stamps for the roles this repository implements.
var (
	SoftwarePayee    = Software{Name: "Saturn Network - Payee", Version: "1.00"}
	SoftwareProvider = Software{Name: "Saturn Network - Provider", Version: "1.00"}
	SoftwareAcquirer = Software{Name: "Saturn Network - Acquirer", Version: "1.00"}
)
