package store

import (
	"time"

	"fluxo/internal/models"
)

// DemoSeeds returns the reference transaction set used to populate a fresh
// account. Descriptions arrive raw, exactly as a bank statement would emit
// them; enrichment fills in category and clean description afterwards.
// Amounts are in cents, negative for outbound.
func DemoSeeds(now time.Time) []models.Transaction {
	return []models.Transaction{
		{
			RawDescription: "PGTO *UBER DO BRASIL TEC",
			Type:           models.TransactionTypeOut,
			Amount:         -2490,
			Date:           now,
		},
		{
			RawDescription: "TRANSF PIX RECEBIDA - JOAO SILVA",
			Type:           models.TransactionTypeIn,
			Amount:         15000,
			Date:           now.Add(-24 * time.Hour),
		},
		{
			RawDescription: "COMPRA CARTAO - PADARIA ESTRELA",
			Type:           models.TransactionTypeOut,
			Amount:         -1250,
			Date:           now.Add(-48 * time.Hour),
		},
		{
			RawDescription: "PAGAMENTO BOLETO - ALUGUEL IMOB",
			Type:           models.TransactionTypeOut,
			Amount:         -120000,
			Date:           now.Add(-72 * time.Hour),
		},
		{
			RawDescription: "COMPRA MKTPLACE - AMAZON SERV",
			Type:           models.TransactionTypeOut,
			Amount:         -18990,
			Date:           now.Add(-96 * time.Hour),
		},
		{
			RawDescription: "NETFLIX streaming",
			Type:           models.TransactionTypeOut,
			Amount:         -3990,
			Date:           now.Add(-120 * time.Hour),
		},
		{
			RawDescription: "FARMACIA SAO PAULO",
			Type:           models.TransactionTypeOut,
			Amount:         -5540,
			Date:           now.Add(-144 * time.Hour),
		},
	}
}
