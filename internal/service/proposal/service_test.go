package proposal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/bidentry/internal/cache"
	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/database"
	repo "github.com/Additional-Code/bidentry/internal/repository/proposal"
	"github.com/Additional-Code/bidentry/internal/seeddata"
	"github.com/Additional-Code/bidentry/internal/seeder"
	service "github.com/Additional-Code/bidentry/internal/service/proposal"
	"github.com/Additional-Code/bidentry/internal/testutil"
	"github.com/Additional-Code/bidentry/pkg/errorbank"
)

func TestProposalReads(t *testing.T) {
	conns := testutil.NewSQLite(t)
	data := seeddata.Data{
		Projects: []seeddata.Project{},
		Proposals: []seeddata.Proposal{
			{CompanyName: "Prairie Masonry", Zip: "61602"},
		},
	}
	require.NoError(t, seeder.New(database.NewContext(conns), data).Initialize(context.Background()))

	store := cache.NewMemoryStore(time.Minute)
	svc := service.NewService(service.Params{
		Repository: repo.NewRepository(conns),
		Cache:      store,
		Config:     config.Config{},
		Logger:     zap.NewNop(),
	})
	ctx := context.Background()

	proposals, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "61602", proposals[0].Zip)

	_, err = store.Get(ctx, service.CachePrefix+"all")
	assert.NoError(t, err)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Prairie Masonry", p.CompanyName)

	_, err = svc.Get(ctx, 2)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}
