package deliveryconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableMethodsReturnsCopy(t *testing.T) {
	t.Parallel()

	table := Table{"Garden Chair": {"Courier", "Pick-up point"}}

	methods, ok := table.Methods("Garden Chair")
	require.True(t, ok)
	methods[0] = "Teleport"

	again, _ := table.Methods("Garden Chair")
	require.Equal(t, []string{"Courier", "Pick-up point"}, again)

	_, ok = table.Methods("Unknown")
	require.False(t, ok)
}

func TestTableProductsAndMethodsAreSorted(t *testing.T) {
	t.Parallel()

	table := Table{
		"b": {"Courier", "Express Collection"},
		"a": {"Parcel locker", "Courier"},
		"c": nil,
	}

	require.Equal(t, []string{"a", "b", "c"}, table.Products())
	require.Equal(t, []string{"Courier", "Express Collection", "Parcel locker"}, table.DeliveryMethods())
}

func TestTableCloneIsDeep(t *testing.T) {
	t.Parallel()

	table := Table{"a": {"Courier"}}
	clone := table.Clone()
	clone["a"][0] = "Parcel locker"
	clone["b"] = []string{"Courier"}

	require.Equal(t, Table{"a": {"Courier"}}, table)
	require.NotNil(t, Table(nil).Clone())
}

func TestTableValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Table{"a": {"Courier"}, "b": nil}.Validate())
	require.ErrorIs(t, Table{" ": {"Courier"}}.Validate(), ErrInvalidTable)
	require.ErrorIs(t, Table{"a": {"Courier", ""}}.Validate(), ErrInvalidTable)
}
