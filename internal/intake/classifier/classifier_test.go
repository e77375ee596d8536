package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"scanhub/internal/intake/doctypes"
	"scanhub/internal/intake/models"
	"scanhub/internal/platform/logger"
	"scanhub/internal/refdata/mocks"
)

func newClassifier(t *testing.T) (*Classifier, *mocks.MockGateway) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)
	return New(doctypes.Default(), gateway, logger.New()), gateway
}

func TestClassifySupportedDocumentWithCaseAndProsecutor(t *testing.T) {
	c, _ := newClassifier(t)

	status, code := c.Classify(context.Background(), "CASE1", "", "P1", "SJPMC100")

	assert.Equal(t, models.StatusPending, status)
	assert.Empty(t, code)
}

func TestClassifyPTIURNWithEmptyOrgCode(t *testing.T) {
	c, gateway := newClassifier(t)
	gateway.EXPECT().OrgCodeByCaseReference(gomock.Any(), "PTI1").Return("", nil)

	status, code := c.Classify(context.Background(), "", "PTI1", "", "SJPMC100")

	assert.Equal(t, models.StatusFollowUp, status)
	assert.Equal(t, models.StatusCodeCaseNotFound, code)
}

func TestClassifyPTIURNWithResolvedOrgCode(t *testing.T) {
	c, gateway := newClassifier(t)
	gateway.EXPECT().OrgCodeByCaseReference(gomock.Any(), "PTI1").Return("ORG42", nil)

	status, _ := c.Classify(context.Background(), "", "PTI1", "", "SJPP")

	assert.Equal(t, models.StatusPending, status)
}

func TestClassifyUnsupportedDocument(t *testing.T) {
	c, _ := newClassifier(t)

	status, code := c.Classify(context.Background(), "CASE1", "PTI1", "P1", "Unsupported Document")

	assert.Equal(t, models.StatusFollowUp, status)
	assert.Equal(t, models.StatusCodeUnsupportedDocument, code)
}

func TestClassifyGatewayErrorFallsBackToFollowUp(t *testing.T) {
	c, gateway := newClassifier(t)
	gateway.EXPECT().OrgCodeByCaseReference(gomock.Any(), "PTI1").Return("", errors.New("upstream down"))

	status, code := c.Classify(context.Background(), "", "PTI1", "", "SJPN")

	assert.Equal(t, models.StatusFollowUp, status)
	assert.Equal(t, models.StatusCodeCaseNotFound, code)
}

func TestClassifyNoReferencesAtAll(t *testing.T) {
	c, _ := newClassifier(t)

	status, code := c.Classify(context.Background(), "", "", "", "SJPN")

	assert.Equal(t, models.StatusFollowUp, status)
	assert.Equal(t, models.StatusCodeCaseNotFound, code)
}
