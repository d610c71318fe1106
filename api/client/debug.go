package client

import (
	"go.uber.org/zap"
	"strings"
)

// printRequestDebugInfo logs the request as a cURL command. A nil body means GET.
func (c *Client) printRequestDebugInfo(endpoint string, body []byte) {
	sugar := zap.S()
	sugar.Debugf("\nGenerated cURL command:\n")

	if body == nil {
		sugar.Debugf("curl --location --request GET '%s'", endpoint)
		return
	}

	sugar.Debugf("curl --location --request POST '%s' \\", endpoint)
	sugar.Debugf("  --header 'Content-Type: application/json' \\")
	if c.Config.UserAgent != "" {
		sugar.Debugf("  --header 'User-Agent: %s' \\", c.Config.UserAgent)
	}

	bodyString := strings.ReplaceAll(string(body), "'", "'\"'\"'")
	sugar.Debugf("  --data-raw '%s'", bodyString)
}

func (c *Client) printResponseDebugInfo(raw []byte) {
	sugar := zap.S()
	sugar.Debugf("\nResponse\n")
	sugar.Debugf("%s\n", raw)
}
