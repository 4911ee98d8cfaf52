package routes

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"hash/crc32"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

type memStorage struct {
	objects map[string][]byte
}

func (s *memStorage) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	s.objects[key] = body
	return "https://cdn.example.com/" + key, nil
}

func (a *api) upload(name string, img []byte) (int, envelope) {
	a.t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("name", name); err != nil {
		a.t.Fatalf("write field: %v", err)
	}
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		a.t.Fatalf("create form file: %v", err)
	}
	part.Write(img)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/urls/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		a.t.Fatalf("invalid envelope %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

// hugeHeaderPNG announces a 12000x12000 RGBA bitmap in a few dozen bytes.
func hugeHeaderPNG() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})

	chunk := func(kind string, data []byte) {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(data)))
		buf.Write(n[:])
		body := append([]byte(kind), data...)
		buf.Write(body)
		binary.BigEndian.PutUint32(n[:], crc32.ChecksumIEEE(body))
		buf.Write(n[:])
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 12000)
	binary.BigEndian.PutUint32(ihdr[4:], 12000)
	ihdr[8], ihdr[9] = 8, 6
	chunk("IHDR", ihdr)
	chunk("IDAT", []byte{0x78, 0x9c})
	return buf.Bytes()
}

func TestUrls_Upload(t *testing.T) {
	a := newAPI(t)
	a.login()

	var small bytes.Buffer
	if err := png.Encode(&small, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	code, env := a.upload("logo.png", small.Bytes())
	if code != http.StatusOK || !env.Success {
		t.Fatalf("expected upload to succeed, got %d %+v", code, env)
	}
	url := env.Data["url"].(map[string]any)
	if url["name"] != "logo.png" || len(a.storage.objects) != 1 {
		t.Fatalf("unexpected upload result %v, stored %d", url, len(a.storage.objects))
	}

	code, env = a.upload("bomb.png", hugeHeaderPNG())
	if code != http.StatusBadRequest || errorCode(env) != "invalid_image" {
		t.Fatalf("expected invalid_image, got %d %+v", code, env)
	}
	if len(a.storage.objects) != 1 {
		t.Fatalf("oversized image must not be stored")
	}
}
