package stat

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// IdentityStat passes data through untouched.
type IdentityStat struct{}

func (IdentityStat) Kind() Kind                    { return KindIdentity }
func (IdentityStat) RequiredAes() []string         { return nil }
func (IdentityStat) DefaultAes() map[string]string { return nil }

func (IdentityStat) ComputeGroup(df dataframe.DataFrame, _ Context, _ *warnings.Collector) (dataframe.DataFrame, error) {
	return df, nil
}
