package central

import (
	"context"
	"fmt"
)

// SendCommands pushes CLI configuration lines to a gateway (by serial+MAC,
// formatted "SERIAL-MAC") or to every gateway in a group, via the
// config-as-a-service API. The server applies the commands asynchronously
// and returns a task ID to poll with GetTaskStatus.
func (c *Client) SendCommands(ctx context.Context, target string, cmds []string) *Response {
	if c.customerID == "" {
		r := newResponse("POST", c.baseURL+"/caasapi/v1/exec/cmd")
		r.Err = fmt.Errorf("caas requires customer_id to be set for this workspace")
		return r
	}
	return c.Post(ctx, "/caasapi/v1/exec/cmd",
		WithParam("cp_id", c.customerID),
		WithParam("group_name", target),
		WithBody(map[string]any{"cli_cmds": cmds}),
	)
}

// GetTaskStatus polls the state of an async CaaS task.
func (c *Client) GetTaskStatus(ctx context.Context, taskID string) *Response {
	return c.Get(ctx, "/caasapi/v1/status/"+taskID)
}
