package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type NewLeadEmailData struct {
	Name     string
	LeadType string
	Location string
}

type LeadSoldEmailData struct {
	Name     string
	LeadType string
	// BuyerPrice já vem com o markup único aplicado — mesma taxa da
	// vitrine, nunca uma segunda constante.
	BuyerPrice int64
}

type AppointmentEmailData struct {
	Name     string
	LeadType string
	Date     string
	Slot     string
}
