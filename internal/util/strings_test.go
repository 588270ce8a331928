package util_test

import (
	"testing"

	"github.com/ghettovoice/connuri/internal/util"
)

func TestStringBuilderPool(t *testing.T) {
	t.Parallel()

	sb := util.GetStringBuilder()
	sb.WriteString("postgresql://")
	if got := sb.String(); got != "postgresql://" {
		t.Errorf("sb.String() = %q, want %q", got, "postgresql://")
	}
	util.FreeStringBuilder(sb)

	sb = util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if sb.Len() != 0 {
		t.Errorf("pooled builder is not reset: %q", sb.String())
	}
}
