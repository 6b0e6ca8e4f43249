package postgresadapter

import (
	"context"
	"time"

	"renopick/contexts/quote-exchange/quote-service/ports"

	"github.com/google/uuid"
)

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.IDGenerator = UUIDGenerator{}
var _ ports.Clock = SystemClock{}
