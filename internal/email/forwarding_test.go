package email

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasProvider(t *testing.T) {
	tests := []struct {
		name     string
		records  []*net.MX
		provider string
		want     bool
	}{
		{
			name: "forwarding provider present",
			records: []*net.MX{
				{Host: "mx1.forwardemail.net.", Pref: 10},
				{Host: "mx2.forwardemail.net.", Pref: 20},
			},
			provider: "forwardemail.net",
			want:     true,
		},
		{
			name: "other provider only",
			records: []*net.MX{
				{Host: "aspmx.l.google.com.", Pref: 1},
			},
			provider: "forwardemail.net",
			want:     false,
		},
		{
			name:     "no records",
			records:  nil,
			provider: "forwardemail.net",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasProvider(tt.records, tt.provider))
		})
	}
}
