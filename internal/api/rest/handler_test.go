package rest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"drip-backend/internal/domain/entity"
)

type stubTryOn struct {
	result *entity.TryOnResult
	err    error
	got    [2][]byte
}

func (s *stubTryOn) TryOn(ctx context.Context, userImage, clothingImage []byte) (*entity.TryOnResult, error) {
	s.got = [2][]byte{userImage, clothingImage}
	return s.result, s.err
}

type stubWeather struct {
	err error
}

func (s stubWeather) Analyze(ctx context.Context, lat, lon float64) (*entity.Weather, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Weather{Temperature: 22.5, Condition: "Clear", Recommendation: "Perfect weather for light clothing", City: "Demo City"}, nil
}

type stubOutfit struct {
	in    entity.WeatherInput
	style string
}

func (s *stubOutfit) Suggest(ctx context.Context, in entity.WeatherInput, style string) *entity.OutfitSuggestion {
	s.in, s.style = in, style
	return &entity.OutfitSuggestion{Suggestion: "ok - Style: " + style, Confidence: "85%", WeatherConsidered: true}
}

func newTestServer(t *testing.T, tryOn TryOner, weather WeatherAnalyzer, outfit OutfitSuggester) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(NewHandler(tryOn, weather, outfit, 1<<20), 5*time.Second))
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, data := range files {
		part, err := w.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestRootAndTestConnection(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, &stubOutfit{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Drip AI Backend is LIVE!", decodeBody(t, resp)["message"])

	resp, err = http.Get(srv.URL + "/test-connection")
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "1.0.0", body["version"])

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, &stubOutfit{})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/virtual-try-on", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://app.local")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestVirtualTryOn(t *testing.T) {
	tryOn := &stubTryOn{result: &entity.TryOnResult{
		ID:        "abc",
		Image:     []byte("jpeg-bytes"),
		Placement: entity.PlacementRect{X: 230, Y: 144, Width: 192, Height: 256},
		Width:     640,
		Height:    480,
	}}
	srv := newTestServer(t, tryOn, stubWeather{}, &stubOutfit{})

	body, ct := multipartBody(t, map[string][]byte{
		"user_image":     []byte("user"),
		"clothing_image": []byte("shirt!"),
	})
	resp, err := http.Post(srv.URL+"/virtual-try-on", ct, body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody(t, resp)
	require.Equal(t, true, out["success"])
	require.Equal(t, "abc", out["id"])
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), out["try_on_image"])
	require.EqualValues(t, 4, out["user_image_size"])
	require.EqualValues(t, 6, out["clothing_image_size"])
	require.EqualValues(t, 230, out["placement"].(map[string]any)["x"])

	require.Equal(t, []byte("user"), tryOn.got[0])
	require.Equal(t, []byte("shirt!"), tryOn.got[1])
}

func TestVirtualTryOn_MissingField(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, &stubOutfit{})

	body, ct := multipartBody(t, map[string][]byte{"user_image": []byte("user")})
	resp, err := http.Post(srv.URL+"/virtual-try-on", ct, body)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "No clothing_image uploaded", decodeBody(t, resp)["error"])
}

func TestVirtualTryOn_NotMultipart(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, &stubOutfit{})

	resp, err := http.Post(srv.URL+"/virtual-try-on", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestVirtualTryOn_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{entity.ErrNoBodyDetected, http.StatusBadRequest, "No body detected"},
		{fmt.Errorf("wrap: %w", entity.ErrMissingLandmark), http.StatusBadRequest, "No body detected"},
		{fmt.Errorf("user image: %w", entity.ErrDecodeFailure), http.StatusBadRequest, "Invalid image"},
		{entity.ErrOutOfBounds, http.StatusUnprocessableEntity, "Clothing does not fit the photo"},
		{fmt.Errorf("secret internal detail"), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			srv := newTestServer(t, &stubTryOn{err: tc.err}, stubWeather{}, &stubOutfit{})

			body, ct := multipartBody(t, map[string][]byte{
				"user_image":     []byte("u"),
				"clothing_image": []byte("c"),
			})
			resp, err := http.Post(srv.URL+"/virtual-try-on", ct, body)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			require.Equal(t, tc.msg, decodeBody(t, resp)["error"])
		})
	}
}

func TestAnalyzeWeather(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, &stubOutfit{})

	resp, err := http.Get(srv.URL + "/analyze-weather?lat=55.75&lon=37.61")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)
	require.Equal(t, 22.5, out["temperature"])
	require.Equal(t, "Clear", out["condition"])
	require.Equal(t, "Demo City", out["city"])
	require.Equal(t, "Perfect weather for light clothing", out["recommendation"])
}

func TestAnalyzeWeather_BadParams(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, &stubOutfit{})

	for _, q := range []string{"", "?lat=1", "?lat=abc&lon=1"} {
		resp, err := http.Get(srv.URL + "/analyze-weather" + q)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		resp.Body.Close()
	}
}

func TestAnalyzeWeather_Upstream(t *testing.T) {
	srv := newTestServer(t, &stubTryOn{}, stubWeather{err: entity.ErrWeatherUnavailable}, &stubOutfit{})

	resp, err := http.Get(srv.URL + "/analyze-weather?lat=1&lon=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	resp.Body.Close()

	srv = newTestServer(t, &stubTryOn{}, stubWeather{err: entity.ErrInvalidCoordinates}, &stubOutfit{})
	resp, err = http.Get(srv.URL + "/analyze-weather?lat=100&lon=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSuggestOutfit(t *testing.T) {
	outfit := &stubOutfit{}
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, outfit)

	resp, err := http.Post(srv.URL+"/suggest-outfit?style=formal", "application/json",
		strings.NewReader(`{"temperature": 5, "condition": "Rain"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody(t, resp)
	require.Equal(t, "85%", out["confidence"])
	require.Equal(t, true, out["weather_considered"])
	require.Equal(t, "formal", outfit.style)
	require.NotNil(t, outfit.in.Temperature)
	require.Equal(t, 5.0, *outfit.in.Temperature)
	require.Equal(t, "Rain", *outfit.in.Condition)
}

func TestSuggestOutfit_EmptyAndBadBody(t *testing.T) {
	outfit := &stubOutfit{}
	srv := newTestServer(t, &stubTryOn{}, stubWeather{}, outfit)

	resp, err := http.Post(srv.URL+"/suggest-outfit", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Nil(t, outfit.in.Temperature)

	resp, err = http.Post(srv.URL+"/suggest-outfit", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
