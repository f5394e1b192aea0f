package dto

// CustomerInput identificação do cliente no checkout (opcional). O fluxo
// resolve por WhatsApp, depois CPF; se nada casar, cria o cadastro.
type CustomerInput struct {
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp,omitempty"`
	CPF      string `json:"cpf,omitempty"`
}

// CustomerResponse cliente nas respostas.
type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Whatsapp    string `json:"whatsapp,omitempty"`
	CPF         string `json:"cpf,omitempty"`
	OriginPDVID string `json:"origin_pdv_id,omitempty"`
}
