package certificates

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	return NewService(NewStore(client, "clinic1"), func() time.Time { return now })
}

func TestListEmptyType(t *testing.T) {
	svc := testService(t)

	templates, err := svc.List(context.Background(), TypeBirth)
	require.NoError(t, err)
	require.Empty(t, templates)

	_, err = svc.List(context.Background(), Type("marriage"))
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestReplaceIsWholeCollection(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	saved, err := svc.Replace(ctx, TypeDischarge, []Template{
		{Name: "Standard", Body: "<p>{{.Patient.Name}} discharged.</p>"},
		{Name: "Short", Body: "<p>Discharged.</p>"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.NotEmpty(t, saved[0].ID)
	require.False(t, saved[0].UpdatedAt.IsZero())

	// A second replace drops anything not resubmitted.
	saved, err = svc.Replace(ctx, TypeDischarge, []Template{saved[0]})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	templates, err := svc.List(ctx, TypeDischarge)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.Equal(t, "Standard", templates[0].Name)
}

func TestReplaceKeepsExistingIDs(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	saved, err := svc.Replace(ctx, TypeFitness, []Template{{Name: "Fit", Body: "ok"}})
	require.NoError(t, err)
	id := saved[0].ID

	saved, err = svc.Replace(ctx, TypeFitness, []Template{{ID: id, Name: "Fit", Body: "updated"}})
	require.NoError(t, err)
	require.Equal(t, id, saved[0].ID)

	got, err := svc.Get(ctx, TypeFitness, id)
	require.NoError(t, err)
	require.Equal(t, "updated", got.Body)
}

func TestTypesAreIsolated(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, err := svc.Replace(ctx, TypeBirth, []Template{{Name: "Birth", Body: "b"}})
	require.NoError(t, err)

	templates, err := svc.List(ctx, TypeDeath)
	require.NoError(t, err)
	require.Empty(t, templates)
}

func TestReplaceSkipsBlankRows(t *testing.T) {
	svc := testService(t)

	saved, err := svc.Replace(context.Background(), TypeBirth, []Template{
		{Name: "Birth", Body: "b"},
		{Name: "  ", Body: ""},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
}
