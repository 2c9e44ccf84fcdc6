package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidReason, "unknown halt reason %q", "Lunch")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidReason, err.Code)
	suite.Equal(`unknown halt reason "Lunch"`, err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidTimestamp, "bad halt start", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidTimestamp, err.Code)
	suite.Equal("bad halt start", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataSourceUnavailable, cause, "cannot open halt file for %s", "ADAP")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataSourceUnavailable, err.Code)
	suite.Equal("cannot open halt file for ADAP", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidInterval, "halt end precedes start")
	suite.Equal("[400] halt end precedes start", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeParseError, "malformed line", cause)
	suite.Equal("[300] malformed line: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeInvalidReason, "bad reason")
	err := Wrap(ErrCodeParseError, "malformed line", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeParseError, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromNonCodedError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidInterval, "negative interval")
	suite.True(HasCode(err, ErrCodeInvalidInterval))
	suite.False(HasCode(err, ErrCodeParseError))
}

func (suite *ErrorTestSuite) TestIsParseError() {
	suite.True(IsParseError(New(ErrCodeParseError, "x")))
	suite.True(IsParseError(New(ErrCodeInvalidReason, "x")))
	suite.True(IsParseError(New(ErrCodeInvalidTimestamp, "x")))
	suite.True(IsParseError(New(ErrCodeInvalidFieldCount, "x")))
	suite.False(IsParseError(New(ErrCodeInvalidInterval, "x")))
	suite.False(IsParseError(New(ErrCodeDataNotFound, "x")))
	suite.False(IsParseError(errors.New("plain")))
	suite.False(IsParseError(nil))
}

func (suite *ErrorTestSuite) TestIs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.True(Is(err, cause))
	suite.False(Is(err, errors.New("underlying error")))
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeParseError)
	suite.Equal(ErrorCode(400), ErrCodeInvalidInterval)
	suite.Equal(ErrorCode(500), ErrCodeVersionMismatch)
}

func (suite *ErrorTestSuite) TestLineError() {
	inner := New(ErrCodeInvalidReason, "unknown halt reason")
	err := NewLineError("adap.csv", 3, inner)

	suite.Equal("adap.csv:3: [301] unknown halt reason", err.Error())
	suite.Equal(inner, err.Unwrap())
	var lineErr *LineError
	suite.Require().ErrorAs(err, &lineErr)
	suite.Equal(3, lineErr.Line)
	suite.Equal(ErrCodeInvalidReason, GetCode(err))
	suite.True(IsParseError(err))
}
