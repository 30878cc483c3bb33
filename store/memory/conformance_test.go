package memory

import (
	"testing"

	"github.com/xraph/prospect/store"
	"github.com/xraph/prospect/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(*testing.T) store.Store { return New() })
}
