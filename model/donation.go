package model

const DonationAwaitingDelivery = "aguardando_entrega"

// Remote field names of the donations table.
const (
	DonationDonor           = "doador"
	DonationLetter          = "cartinha"
	DonationCollectionPoint = "ponto_coleta"
	DonationDate            = "data_doacao"
	DonationStatus          = "status_doacao"
)

// Donation records one adopted letter. It is written once and never updated.
type Donation struct {
	Donor           string
	Letter          string
	CollectionPoint string
	Date            string
	Status          string
}

func (d Donation) Fields() Fields {
	return Fields{
		DonationDonor:           d.Donor,
		DonationLetter:          d.Letter,
		DonationCollectionPoint: d.CollectionPoint,
		DonationDate:            d.Date,
		DonationStatus:          d.Status,
	}
}
