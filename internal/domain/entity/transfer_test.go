package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del traslado: PENDING → IN_TRANSIT → COMPLETED, con
// CANCELLED alcanzable desde PENDING e IN_TRANSIT. COMPLETED es irreversible.
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_TransicionesPermitidas(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{entity.TransferStatusPending, entity.TransferStatusInTransit, true},
		{entity.TransferStatusPending, entity.TransferStatusCancelled, true},
		{entity.TransferStatusInTransit, entity.TransferStatusCompleted, true},
		{entity.TransferStatusInTransit, entity.TransferStatusCancelled, true},

		// Completar sin despachar no está permitido
		{entity.TransferStatusPending, entity.TransferStatusCompleted, false},

		// Terminales
		{entity.TransferStatusCompleted, entity.TransferStatusCancelled, false},
		{entity.TransferStatusCompleted, entity.TransferStatusInTransit, false},
		{entity.TransferStatusCancelled, entity.TransferStatusPending, false},
		{entity.TransferStatusCancelled, entity.TransferStatusInTransit, false},

		// Retrocesos
		{entity.TransferStatusInTransit, entity.TransferStatusPending, false},
	}
	for _, tc := range cases {
		tr := &entity.Transfer{Status: tc.from}
		assert.Equal(t, tc.allowed, tr.CanTransition(tc.to),
			"transición %s → %s", tc.from, tc.to)
	}
}

func TestTransfer_EstadosTerminales(t *testing.T) {
	assert.True(t, (&entity.Transfer{Status: entity.TransferStatusCompleted}).IsTerminal())
	assert.True(t, (&entity.Transfer{Status: entity.TransferStatusCancelled}).IsTerminal())
	assert.False(t, (&entity.Transfer{Status: entity.TransferStatusPending}).IsTerminal())
	assert.False(t, (&entity.Transfer{Status: entity.TransferStatusInTransit}).IsTerminal())
}

// El tipo del traslado se deriva del kind de cada ubicación del par.
func TestTransferTypeFor_ParesDeUbicacion(t *testing.T) {
	w, s := entity.LocationKindWarehouse, entity.LocationKindStorefront

	assert.Equal(t, entity.TransferTypeWarehouseToWarehouse, entity.TransferTypeFor(w, w))
	assert.Equal(t, entity.TransferTypeWarehouseToStorefront, entity.TransferTypeFor(w, s))
	assert.Equal(t, entity.TransferTypeStorefrontToWarehouse, entity.TransferTypeFor(s, w))
	assert.Equal(t, entity.TransferTypeStorefrontToStorefront, entity.TransferTypeFor(s, s))
}
