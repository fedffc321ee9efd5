package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallido_VuelveALaColaComoJob(t *testing.T) {
	f := Fallido{
		Job:     Job{Type: JobReporteSemanal, Payload: json.RawMessage(`{"fecha":"2024-03-13","email":"dueno@example.com"}`), Attempts: MaxAttempts},
		Motivo:  "dial tcp smtp.example.com:587: i/o timeout",
		FalloEn: time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(f)
	require.NoError(t, err)

	// an entry moved back with LMOVE must run like any queued job
	calls := 0
	handlers := map[string]Handler{JobReporteSemanal: handlerFunc(func(_ context.Context, p json.RawMessage) error {
		calls++
		var payload ReporteJobPayload
		require.NoError(t, json.Unmarshal(p, &payload))
		assert.Equal(t, "dueno@example.com", payload.Email)
		return nil
	})}
	res := processJob(context.Background(), handlers, string(raw))
	assert.Equal(t, destinoHecho, res.destino)
	assert.Equal(t, 1, calls)
}

func TestDecodificarFallido(t *testing.T) {
	raw, err := json.Marshal(Fallido{Job: Job{Type: JobReporteSemanal, Attempts: 3}, Motivo: "smtp caído"})
	require.NoError(t, err)

	f := decodificarFallido(raw)
	require.NotNil(t, f)
	assert.Equal(t, "smtp caído", f.Motivo)
	assert.Equal(t, 3, f.Attempts)

	assert.Nil(t, decodificarFallido([]byte("basura")))
	assert.Nil(t, decodificarFallido([]byte(`{"motivo":"x"}`)))
}
