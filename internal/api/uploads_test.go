package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/patrickwarner/adlibrary/internal/db"
	"github.com/patrickwarner/adlibrary/internal/media"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartUpload(t, "pixel.png", "image/png", pngFixture(t)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var img media.Image
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &img))
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.True(t, media.IsDataURI(img.DataURI))

	mimeType, data, err := media.ParseDataURI(img.DataURI)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, pngFixture(t), data)
}

func TestUploadRejectsNonImage(t *testing.T) {
	env := newTestEnv(t, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartUpload(t, "notes.txt", "text/plain", []byte("hello there")))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewURL(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/uploads/preview", map[string]string{"url": "https://example.com/a.jpg"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"image_url":"https://example.com/a.jpg","ok":true,"mime":"image/jpeg"}`, w.Body.String())

	env.server.Checker = stubChecker{err: errors.New("broken image")}
	w = env.do(t, http.MethodPost, "/api/uploads/preview", map[string]string{"url": "https://example.com/broken"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"image_url":"","ok":false,"error":"broken image"}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/uploads/preview", map[string]string{}).Code)
}

func TestMutationsPublishToRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := db.NewRedisStore(client)
	defer store.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, db.UpdateChannel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	env := newTestEnv(t, nil)
	env.server.Publisher = store

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/ads/3/bookmark", nil).Code)

	select {
	case m := <-sub.Channel():
		var got db.UpdateMessage
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &got))
		assert.Equal(t, db.UpdateMessage{Entity: "ad", Action: "bookmark", ID: "3"}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update message")
	}
}
