package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    CodeVersionInvalid,
			wantMsg: "Invalid protocol version",
			wantCat: CategoryConfig,
		},
		{
			name:    "mapping error",
			code:    CodeMappingLoad,
			wantMsg: "Mapping table load failed",
			wantCat: CategoryMapping,
		},
		{
			name:    "encoding error",
			code:    CodeNotEncodable,
			wantMsg: "Nothing to send",
			wantCat: CategoryEncoding,
		},
		{
			name:    "server error",
			code:    CodeTaskRejected,
			wantMsg: "Task rejected",
			wantCat: CategoryServer,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown effect %q", "SPARKLE")
	if err.Message != `unknown effect "SPARKLE"` {
		t.Errorf("Message = %q, want %q", err.Message, `unknown effect "SPARKLE"`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	err := New(CodePortInvalid)
	if got, want := err.Error(), "E103: Invalid port"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &Error{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	err3 := New(CodeConfigInvalid).Wrap(stderrors.New("unexpected EOF"))
	if got, want := err3.Error(), "E101: Invalid config: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_With(t *testing.T) {
	err := New(CodeUnknownEffect).
		WithSuggestion("Run particlewire effects").
		WithDetail("custom detail")
	if err.Suggestion != "Run particlewire effects" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Detail != "custom detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestError_Wrap(t *testing.T) {
	sentinel := stderrors.New("boom")
	outer := New(CodeServerStart).Wrap(sentinel)

	if outer.Unwrap() != sentinel {
		t.Error("Unwrap() should return wrapped error")
	}
	if !stderrors.Is(outer, sentinel) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeConfigInvalid) != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	coded := New(CodeConfigNotFound)
	if FromError(coded, CodeConfigInvalid) != coded {
		t.Error("FromError should return coded errors as-is")
	}

	plain := &testError{msg: "test error"}
	result := FromError(plain, CodeConfigInvalid)
	if result.Wrapped != plain || result.Code != CodeConfigInvalid {
		t.Errorf("FromError() = %+v; want plain error wrapped under E101", result)
	}
}

func TestHasCode(t *testing.T) {
	err := New(CodeMappingRemote).Wrap(stderrors.New("timeout"))
	wrapped := stderrors.Join(stderrors.New("load"), err)

	if !HasCode(wrapped, CodeMappingRemote) {
		t.Error("HasCode() = false; want true")
	}
	if HasCode(wrapped, CodeMappingLoad) {
		t.Error("HasCode(E110) = true; want false")
	}
	if HasCode(stderrors.New("plain"), CodeMappingRemote) {
		t.Error("HasCode(plain) = true; want false")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeVersionInvalid).
		WithSuggestion("Use a version like 1.19").
		Wrap(stderrors.New(`"1.x" is not a number`))

	formatted := err.Format()
	for _, want := range []string{
		"ERROR E102: Invalid protocol version",
		`Cause: "1.x" is not a number`,
		"Hint: Use a version like 1.19",
		"Learn more: https://particlewire.dev/docs/errors/E102",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q in:\n%s", want, formatted)
		}
	}
	if strings.Contains(formatted, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	if got, want := New(CodeTaskRejected).FormatCompact(), "E131: Task rejected"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
	if got := (&Error{Message: "plain"}).FormatCompact(); got != "plain" {
		t.Errorf("FormatCompact() = %q, want %q", got, "plain")
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeNotEncodable).Wrap(stderrors.New("feature below tier"))

	var got map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &got); jerr != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", jerr)
	}
	want := map[string]string{
		"code":     "E122",
		"category": "encoding",
		"message":  "Nothing to send",
		"cause":    "feature below tier",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("FormatJSON()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["suggestion"]; ok {
		t.Error("empty suggestion should be omitted")
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, New(CodeMissingArgument))
	if !strings.Contains(buf.String(), "E135: Missing argument") {
		t.Errorf("Fprint(coded) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted at %d: %q >= %q", i, codes[i-1], codes[i])
		}
	}
	for _, code := range codes {
		tmpl, _ := GetTemplate(code)
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s is incomplete: %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("template %s DocURL = %q", code, tmpl.DocURL)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate(CodeMappingInvalid)
	if !ok {
		t.Fatal("E111 should exist")
	}
	if template.Message != "Invalid mapping table" {
		t.Errorf("Template message = %q", template.Message)
	}

	if _, ok := GetTemplate("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryServer,
		Message:  "Custom test error",
		Detail:   "This is a test error",
		DocURL:   "https://test.dev/E999",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
