package eventrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"climasite/internal/adapters/out/postgres/eventrepo"
	"climasite/internal/adapters/out/postgres/postgrestest"

	"github.com/stretchr/testify/suite"
)

type PaymentEventRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *eventrepo.GormPaymentEventRepository
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = eventrepo.NewGormPaymentEventRepository(suite.database.Gorm)
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) TestRecord_FirstDeliveryIsFresh() {
	ctx := suite.T().Context()
	now := time.Now()

	fresh, err := suite.repository.Record(ctx, "evt_1", "payment_intent.succeeded", "pi_1", now)
	suite.Require().NoError(err)
	suite.True(fresh)

	fresh, err = suite.repository.Record(ctx, "evt_1", "payment_intent.succeeded", "pi_1", now)
	suite.Require().NoError(err)
	suite.False(fresh, "redelivery must be recognized")

	fresh, err = suite.repository.Record(ctx, "evt_2", "charge.refunded", "pi_1", now)
	suite.Require().NoError(err)
	suite.True(fresh)
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) TestRecord_ConcurrentDeliveriesHaveOneWinner() {
	ctx := suite.T().Context()
	const deliveries = 8

	var wg sync.WaitGroup
	results := make(chan bool, deliveries)
	failures := make(chan error, deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fresh, err := suite.repository.Record(ctx, "evt_race", "payment_intent.succeeded", "pi_race", time.Now())
			if err != nil {
				failures <- err
				return
			}
			results <- fresh
		}()
	}
	wg.Wait()
	close(results)
	close(failures)

	for err := range failures {
		suite.Require().NoError(err)
	}
	winners := 0
	for fresh := range results {
		if fresh {
			winners++
		}
	}
	suite.Equal(1, winners)
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) TestRecord_RolledBackInsertIsForgotten() {
	ctx := suite.T().Context()

	tx := suite.database.Gorm.Begin()
	suite.Require().NoError(tx.Error)
	fresh, err := eventrepo.NewGormPaymentEventRepository(tx).Record(ctx, "evt_tx", "payment_intent.succeeded", "pi_tx", time.Now())
	suite.Require().NoError(err)
	suite.True(fresh)
	suite.Require().NoError(tx.Rollback().Error)

	fresh, err = suite.repository.Record(ctx, "evt_tx", "payment_intent.succeeded", "pi_tx", time.Now())
	suite.Require().NoError(err)
	suite.True(fresh, "a failed attempt must not mark the event as processed")
}

func (suite *PaymentEventRepositoryIntegrationTestSuite) TestDeleteOlderThan() {
	ctx := suite.T().Context()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := suite.repository.Record(ctx, "evt_old", "payment_intent.succeeded", "pi_1", now.Add(-48*time.Hour))
	suite.Require().NoError(err)
	_, err = suite.repository.Record(ctx, "evt_new", "payment_intent.succeeded", "pi_2", now)
	suite.Require().NoError(err)

	removed, err := suite.repository.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), removed)

	fresh, err := suite.repository.Record(ctx, "evt_old", "payment_intent.succeeded", "pi_1", now)
	suite.Require().NoError(err)
	suite.True(fresh)
	fresh, err = suite.repository.Record(ctx, "evt_new", "payment_intent.succeeded", "pi_2", now)
	suite.Require().NoError(err)
	suite.False(fresh)
}

func TestPaymentEventRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentEventRepositoryIntegrationTestSuite))
}
