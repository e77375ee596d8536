package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"scanhub/internal/intake/classifier"
	"scanhub/internal/intake/doctypes"
	"scanhub/internal/intake/handler"
	"scanhub/internal/intake/models"
	"scanhub/internal/intake/normalizer"
	"scanhub/internal/intake/service"
	"scanhub/internal/lifecycle"
	"scanhub/internal/lifecycle/store"
	"scanhub/internal/platform/logger"
	"scanhub/internal/reconcile"
	"scanhub/internal/reconcile/mocks"
	"scanhub/internal/refdata"
	"scanhub/internal/stream"
	"scanhub/pkg/testutil"
)

type fixture struct {
	server *httptest.Server
	cases  *mocks.MockCaseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	cases := mocks.NewMockCaseService(ctrl)
	log := logger.New()
	gateway := &refdata.MemoryGateway{
		OrgCodes:   map[string]string{"06AA0000215": "ORG42"},
		ShortNames: map[string]string{"ORG42": "TVP"},
	}
	table := doctypes.Default()
	lc := lifecycle.NewService(store.NewMemoryStore(), stream.NewMemoryPublisher(), nil, log)
	intake := service.New(normalizer.New(table, gateway, log), classifier.New(table, gateway, log), lc, nil, log, 2)
	rec := reconcile.NewService(cases, lc, log)

	router := chi.NewRouter()
	handler.New(intake, lc, rec, log).Register(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &fixture{server: server, cases: cases}
}

func (f *fixture) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(f.server.URL+path, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func (f *fixture) decodeEnvelope(t *testing.T, resp *http.Response) models.ScanEnvelope {
	t.Helper()
	defer resp.Body.Close()
	var env models.ScanEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func (f *fixture) ingest(t *testing.T) models.ScanEnvelope {
	t.Helper()
	resp := f.post(t, "/scan/envelopes", models.EnvelopePayload{
		ZipFileName: "batch.zip",
		AssociatedScanDocuments: []models.DocumentPayload{
			{CaseURN: "URN1", ProsecutorAuthorityID: "ORG42", DocumentName: "SJPN"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return f.decodeEnvelope(t, resp)
}

func docPath(env models.ScanEnvelope, action string) string {
	return fmt.Sprintf("/scan/envelopes/%s/documents/%s/%s", env.ID, env.Documents[0].ID, action)
}

func TestIngestAndGetEnvelope(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)
	require.Len(t, env.Documents, 1)
	assert.Equal(t, models.StatusPending, env.Documents[0].Status)

	resp, err := http.Get(f.server.URL + "/scan/envelopes/" + env.ID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := f.decodeEnvelope(t, resp)
	assert.Equal(t, env.ID, fetched.ID)
	assert.Equal(t, "batch.zip", fetched.ZipFileName)
}

func TestIngestRejectsMalformedBody(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Post(f.server.URL+"/scan/envelopes", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUnknownEnvelopeIs404(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/scan/envelopes/6f1d4f0a-5b8e-4d2c-9c55-0f4f7a1f2b11")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetInvalidEnvelopeIDIs400(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/scan/envelopes/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestManualActionTransitionsDocument(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "manual-action"), map[string]string{"actor": "clerk"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := f.decodeEnvelope(t, resp)
	assert.Equal(t, models.StatusManuallyActioned, updated.Documents[0].Status)
	assert.Equal(t, "clerk", updated.Documents[0].ActionedBy)
}

func TestManualActionWithoutActorIs400(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "manual-action"), map[string]string{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteNonActionedDocumentIs409(t *testing.T) {
	f := newFixture(t)

	testutil.Given(t, "a registered envelope with a pending document", func(t *testing.T) {
		env := f.ingest(t)

		testutil.When(t, "the document is deleted before being actioned", func(t *testing.T) {
			resp := f.post(t, docPath(env, "delete"), nil)
			defer resp.Body.Close()

			testutil.Then(t, "the request conflicts and the document survives", func(t *testing.T) {
				assert.Equal(t, http.StatusConflict, resp.StatusCode)

				get, err := http.Get(f.server.URL + "/scan/envelopes/" + env.ID.String())
				require.NoError(t, err)
				current := f.decodeEnvelope(t, get)
				assert.False(t, current.Documents[0].Deleted)
			})
		})
	})
}

func TestDeleteActionedDocument(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "auto-action"), map[string]string{"actor": "rule-engine"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.post(t, docPath(env, "delete"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := f.decodeEnvelope(t, resp)
	assert.True(t, updated.Documents[0].Deleted)
}

func TestRejectRequiresProblems(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "reject"), map[string]any{"problems": []string{}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRejectMovesDocumentToFollowUp(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "reject"), map[string]any{"problems": []string{"illegible"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := f.decodeEnvelope(t, resp)
	assert.Equal(t, models.StatusFollowUp, updated.Documents[0].Status)
	assert.Equal(t, models.StatusCodeRejected, updated.Documents[0].StatusCode)
}

func TestExpireDocument(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "expire"), map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := f.decodeEnvelope(t, resp)
	assert.Equal(t, models.StatusExpired, updated.Documents[0].Status)
}

func TestReconcilePleaWithoutPleaDataIs400(t *testing.T) {
	f := newFixture(t)
	env := f.ingest(t)

	resp := f.post(t, docPath(env, "reconcile/plea"), map[string]string{"actor": "clerk"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
