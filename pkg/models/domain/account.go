package domain

// AccountBinding is the stored AWS credential set for one principal. It is
// created only after a successful STS identity check and is read-only for the
// lifetime of a request; replace or delete are the only mutations.
type AccountBinding struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	AccountID       string
	ARN             string
	CallerUserID    string
}
