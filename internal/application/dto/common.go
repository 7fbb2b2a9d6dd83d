package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RetryableErrorResponse error de la pasarela: el admin puede reintentar o, si el despliegue
// lo permite, usar la activación manual.
type RetryableErrorResponse struct {
	Code                      string `json:"code"`
	Message                   string `json:"message"`
	Retryable                 bool   `json:"retryable"`
	ManualActivationAvailable bool   `json:"manual_activation_available"`
}

// RemediationErrorResponse error con ruta de remediación para el panel.
type RemediationErrorResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Remediation string `json:"remediation"`
}
