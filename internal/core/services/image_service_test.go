package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/core/services"
)

type ImageServiceTestSuite struct {
	suite.Suite
	mockImageRepo *MockImageRepository
	service       portssvc.ImageSvcFacade
}

func (suite *ImageServiceTestSuite) SetupTest() {
	suite.mockImageRepo = new(MockImageRepository)
	suite.service = services.NewImageService(suite.mockImageRepo, 1024)
}

func (suite *ImageServiceTestSuite) TestStore_Success() {
	ctx := context.Background()
	data := []byte("fake png bytes")

	suite.mockImageRepo.On("SaveImage", ctx, mock.MatchedBy(func(image domain.Image) bool {
		return image.ContentType == "image/png" &&
			image.SizeBytes == int64(len(data)) &&
			bytes.Equal(image.Data, data)
	})).Return(nil).Once()

	imageID, err := suite.service.Store(ctx, "receipt.png", "image/png", data)

	suite.Require().NoError(err)
	suite.NotEmpty(imageID)
	suite.mockImageRepo.AssertExpectations(suite.T())
}

func (suite *ImageServiceTestSuite) TestStore_RejectsNonImage() {
	ctx := context.Background()

	imageID, err := suite.service.Store(ctx, "notes.pdf", "application/pdf", []byte("pdf"))

	suite.Require().Error(err)
	suite.Empty(imageID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockImageRepo.AssertNotCalled(suite.T(), "SaveImage", mock.Anything, mock.Anything)
}

func (suite *ImageServiceTestSuite) TestStore_RejectsOversized() {
	ctx := context.Background()

	imageID, err := suite.service.Store(ctx, "big.png", "image/png", make([]byte, 2048))

	suite.Require().Error(err)
	suite.Empty(imageID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ImageServiceTestSuite) TestStore_RejectsEmpty() {
	ctx := context.Background()

	imageID, err := suite.service.Store(ctx, "empty.png", "image/png", nil)

	suite.Require().Error(err)
	suite.Empty(imageID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestImageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImageServiceTestSuite))
}
