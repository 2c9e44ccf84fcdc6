package halt

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ExpanderTestSuite struct {
	suite.Suite
	newYork *time.Location
	symbol  types.Symbol
}

func TestExpanderSuite(t *testing.T) {
	suite.Run(t, new(ExpanderTestSuite))
}

func (suite *ExpanderTestSuite) SetupSuite() {
	loc, err := time.LoadLocation("America/New_York")
	suite.Require().NoError(err)
	suite.newYork = loc
	suite.symbol = types.NewSymbol("ADAP R735QTJ8XC9X", "ADAP")
}

func (suite *ExpanderTestSuite) date(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, suite.newYork)
}

func (suite *ExpanderTestSuite) TestCrossDateHalt() {
	start := suite.date(2020, 1, 1, 10, 31, 2)
	end := suite.date(2020, 1, 2, 14, 32, 56)

	events, err := Expand(types.EmptySymbol, types.HaltReasonLULDPause, start, end, DefaultSession)
	suite.Require().NoError(err)

	expected := []types.TradingHalt{
		{
			Symbol:  types.EmptySymbol,
			Reason:  types.HaltReasonLULDPause,
			Flag:    types.HaltFlagStart,
			Time:    start,
			EndTime: start,
		},
		{
			Symbol:  types.EmptySymbol,
			Reason:  types.HaltReasonLULDPause,
			Flag:    types.HaltFlagEnd,
			Time:    start,
			EndTime: suite.date(2020, 1, 1, 20, 0, 0),
		},
		{
			Symbol:  types.EmptySymbol,
			Reason:  types.HaltReasonLULDPause,
			Flag:    types.HaltFlagStart,
			Time:    suite.date(2020, 1, 2, 4, 0, 0),
			EndTime: suite.date(2020, 1, 2, 4, 0, 0),
		},
		{
			Symbol:  types.EmptySymbol,
			Reason:  types.HaltReasonLULDPause,
			Flag:    types.HaltFlagEnd,
			Time:    suite.date(2020, 1, 2, 4, 0, 0),
			EndTime: end,
		},
	}

	suite.Equal(expected, events)
}

func (suite *ExpanderTestSuite) TestSingleDayHalt() {
	start := suite.date(2021, 9, 7, 9, 45, 0)
	end := suite.date(2021, 9, 7, 9, 50, 0)

	events, err := Expand(suite.symbol, types.HaltReasonLULDPause, start, end, DefaultSession)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)

	suite.Equal(types.HaltFlagStart, events[0].Flag)
	suite.Equal(start, events[0].Time)
	suite.Equal(start, events[0].EndTime)

	suite.Equal(types.HaltFlagEnd, events[1].Flag)
	suite.Equal(start, events[1].Time)
	suite.Equal(end, events[1].EndTime)
}

func (suite *ExpanderTestSuite) TestMultiDayHalt() {
	testCases := []struct {
		name string
		days int
	}{
		{"two days", 2},
		{"three days", 3},
		{"one week", 7},
		{"thirty days", 30},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			start := suite.date(2021, 3, 1, 11, 0, 0)
			end := suite.date(2021, 3, tc.days, 15, 30, 0)

			events, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, DefaultSession)
			suite.Require().NoError(err)
			suite.Require().Len(events, 2*tc.days)

			for i := 0; i < len(events); i += 2 {
				day := i / 2
				startEvent := events[i]
				endEvent := events[i+1]

				suite.Equal(types.HaltFlagStart, startEvent.Flag)
				suite.Equal(types.HaltFlagEnd, endEvent.Flag)
				suite.Equal(startEvent.Time, startEvent.EndTime)
				suite.Equal(startEvent.Time, endEvent.Time)
				suite.False(endEvent.EndTime.Before(endEvent.Time))

				if day > 0 {
					suite.Equal(suite.date(2021, 3, 1+day, 4, 0, 0), startEvent.Time)
				}

				if day < tc.days-1 {
					suite.Equal(suite.date(2021, 3, 1+day, 20, 0, 0), endEvent.EndTime)
				}
			}

			suite.Equal(start, events[0].Time)
			suite.Equal(end, events[len(events)-1].EndTime)
		})
	}
}

func (suite *ExpanderTestSuite) TestEventsAreChronological() {
	start := suite.date(2021, 9, 6, 16, 12, 3)
	end := suite.date(2021, 9, 9, 10, 0, 0)

	events, err := Expand(suite.symbol, types.HaltReasonRegulatoryConcern, start, end, DefaultSession)
	suite.Require().NoError(err)

	for i := 1; i < len(events); i++ {
		suite.False(events[i].Time.Before(events[i-1].Time), "event %d goes back in time", i)
	}
}

func (suite *ExpanderTestSuite) TestZeroLengthHaltYieldsNoEvents() {
	start := suite.date(2021, 9, 7, 9, 45, 0)

	events, err := Expand(suite.symbol, types.HaltReasonLULDPause, start, start, DefaultSession)
	suite.NoError(err)
	suite.Empty(events)
}

func (suite *ExpanderTestSuite) TestEndBeforeStartIsRejected() {
	start := suite.date(2021, 9, 7, 9, 45, 0)

	events, err := Expand(suite.symbol, types.HaltReasonLULDPause, start, start.Add(-time.Minute), DefaultSession)
	suite.Error(err)
	suite.Nil(events)
	suite.Equal(errors.ErrCodeInvalidInterval, errors.GetCode(err))
}

func (suite *ExpanderTestSuite) TestIdempotent() {
	start := suite.date(2021, 9, 6, 16, 12, 3)
	end := suite.date(2021, 9, 8, 10, 0, 0)

	first, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, DefaultSession)
	suite.Require().NoError(err)
	second, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, DefaultSession)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	for i := range first {
		suite.Equal(first[i].Key(), second[i].Key())
	}
}

func (suite *ExpanderTestSuite) TestHaltStartingAfterPostMarket() {
	start := suite.date(2021, 9, 7, 21, 30, 0)
	end := suite.date(2021, 9, 8, 11, 0, 0)

	events, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, DefaultSession)
	suite.Require().NoError(err)
	suite.Require().Len(events, 4)

	// The first day's segment cannot close before it opened.
	suite.Equal(start, events[1].Time)
	suite.Equal(start, events[1].EndTime)
	suite.Equal(suite.date(2021, 9, 8, 4, 0, 0), events[2].Time)
	suite.Equal(end, events[3].EndTime)
}

func (suite *ExpanderTestSuite) TestHaltResolvedOvernight() {
	start := suite.date(2021, 9, 7, 19, 0, 0)
	end := suite.date(2021, 9, 8, 2, 30, 0)

	events, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, DefaultSession)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)

	// The halt is gone before the next pre-market, so the only segment closes at the halt end.
	suite.Equal(start, events[1].Time)
	suite.Equal(end, events[1].EndTime)
}

func (suite *ExpanderTestSuite) TestDaylightSavingTransition() {
	// US clocks spring forward on 2021-03-14.
	start := suite.date(2021, 3, 13, 12, 0, 0)
	end := suite.date(2021, 3, 15, 12, 0, 0)

	events, err := Expand(suite.symbol, types.HaltReasonCorporateAction, start, end, DefaultSession)
	suite.Require().NoError(err)
	suite.Require().Len(events, 6)

	for _, event := range events[2:] {
		suite.Equal(4, event.Time.Hour())
	}

	suite.Equal(20, events[1].EndTime.Hour())
	suite.Equal(20, events[3].EndTime.Hour())
}

func (suite *ExpanderTestSuite) TestEndInOtherLocationIsConverted() {
	start := suite.date(2021, 9, 7, 10, 0, 0)
	// 2021-09-08 01:00 UTC is 2021-09-07 21:00 in New York.
	end := time.Date(2021, 9, 8, 1, 0, 0, 0, time.UTC)

	events, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, DefaultSession)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.True(end.Equal(events[1].EndTime))
	suite.Equal(suite.newYork, events[1].EndTime.Location())
}

func (suite *ExpanderTestSuite) TestCustomSession() {
	session := Session{PreMarketStart: 9*time.Hour + 30*time.Minute, PostMarketEnd: 16 * time.Hour}
	suite.Require().NoError(session.Validate())

	start := suite.date(2021, 9, 7, 10, 0, 0)
	end := suite.date(2021, 9, 8, 11, 0, 0)

	events, err := Expand(suite.symbol, types.HaltReasonNewsPending, start, end, session)
	suite.Require().NoError(err)
	suite.Require().Len(events, 4)
	suite.Equal(suite.date(2021, 9, 7, 16, 0, 0), events[1].EndTime)
	suite.Equal(suite.date(2021, 9, 8, 9, 30, 0), events[2].Time)
}

func (suite *ExpanderTestSuite) TestSessionValidate() {
	suite.NoError(DefaultSession.Validate())

	invalid := []Session{
		{PreMarketStart: -time.Hour, PostMarketEnd: 20 * time.Hour},
		{PreMarketStart: 4 * time.Hour, PostMarketEnd: 25 * time.Hour},
		{PreMarketStart: 20 * time.Hour, PostMarketEnd: 4 * time.Hour},
		{PreMarketStart: 4 * time.Hour, PostMarketEnd: 4 * time.Hour},
		{},
	}

	for _, session := range invalid {
		err := session.Validate()
		suite.Error(err)
		suite.Equal(errors.ErrCodeInvalidSession, errors.GetCode(err))
	}
}

func (suite *ExpanderTestSuite) TestExpandRecordOngoing() {
	record, err := ParseLine("ADAP R735QTJ8XC9X,ADAP,6,20210907 10:00:00,", suite.newYork)
	suite.Require().NoError(err)

	now := suite.date(2021, 9, 8, 12, 0, 0)
	events, err := ExpandRecord(record, now, DefaultSession)
	suite.Require().NoError(err)
	suite.Require().Len(events, 4)
	suite.Equal(now, events[3].EndTime)
}
