package stratum

import "testing"

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name        string
		frame       string
		wantRequest bool
		wantMethod  string
	}{
		{
			name:        "request",
			frame:       `{"id":1,"method":"mining.subscribe","params":[]}`,
			wantRequest: true,
			wantMethod:  "mining.subscribe",
		},
		{
			name:        "response",
			frame:       `{"id":1,"result":true}`,
			wantRequest: false,
			wantMethod:  "",
		},
		{
			name:        "null method still classifies as request",
			frame:       `{"id":1,"method":null}`,
			wantRequest: true,
			wantMethod:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.frame))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if f.IsRequest() != tt.wantRequest {
				t.Errorf("IsRequest() = %v, want %v", f.IsRequest(), tt.wantRequest)
			}
			if f.MethodName() != tt.wantMethod {
				t.Errorf("MethodName() = %q, want %q", f.MethodName(), tt.wantMethod)
			}
		})
	}
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, frame := range []string{"not json", `"a string"`, "123", "[1,2]", ""} {
		if _, err := Parse([]byte(frame)); err == nil {
			t.Errorf("Parse(%q) = nil error, want error", frame)
		}
	}
}

func TestWorkerName(t *testing.T) {
	tests := []struct {
		name   string
		frame  string
		want   string
		wantOK bool
	}{
		{
			name:   "authorize",
			frame:  `{"id":1,"method":"mining.authorize","params":["rig7.worker","pass"]}`,
			want:   "rig7.worker",
			wantOK: true,
		},
		{
			name:   "submit",
			frame:  `{"id":1,"method":"mining.submit","params":["w1","job","ab","00","00"]}`,
			want:   "w1",
			wantOK: true,
		},
		{
			name:   "subscribe has no worker",
			frame:  `{"id":1,"method":"mining.subscribe","params":["a","b"]}`,
			wantOK: false,
		},
		{
			name:   "non-string first param",
			frame:  `{"id":1,"method":"mining.authorize","params":[7,"pass"]}`,
			wantOK: false,
		},
		{
			name:   "response has no worker",
			frame:  `{"id":1,"result":true}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.frame))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got, ok := f.WorkerName()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("WorkerName() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
