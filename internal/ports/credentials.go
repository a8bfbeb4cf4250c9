package ports

// CredentialScheme encodes a credential at registration and verifies a
// login attempt against the stored value.
type CredentialScheme interface {
	Name() string
	Encode(credential string) (string, error)
	Verify(stored, credential string) bool
}
