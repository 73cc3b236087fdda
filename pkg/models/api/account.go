package api

type ConnectRequest struct {
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	Region          string `json:"region"`
}

type ConnectedAccount struct {
	AccountID string `json:"accountId"`
	ARN       string `json:"arn"`
	Region    string `json:"region"`
}

type ConnectResponse struct {
	Message string           `json:"message"`
	Account ConnectedAccount `json:"account"`
}

type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	AccountID string `json:"accountId,omitempty"`
	Region    string `json:"region,omitempty"`
	ARN       string `json:"arn,omitempty"`
}
