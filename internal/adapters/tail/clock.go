package tail

import (
	"time"

	"github.com/jclulow/junk-tempexporter/internal/ports"
)

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

var _ ports.Clock = systemClock{}
