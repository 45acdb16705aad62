package graph

import (
	"context"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// GroupMemberUPNs resolves a group by display name and returns its user
// members' UPNs in the order Graph yields them, following paging links.
// Members without a userPrincipalName (devices, nested groups) are not
// included.
func (c *Client) GroupMemberUPNs(ctx context.Context, groupName string) ([]string, error) {
	var groups struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}
	path := "/groups?$select=id&$filter=" + url.QueryEscape("displayName eq "+odataQuote(groupName))
	if err := c.get(ctx, path, &groups); err != nil {
		return nil, goerr.Wrap(err, "failed to look up group", goerr.V("group", groupName))
	}
	if len(groups.Value) == 0 {
		return nil, goerr.New("group not found", goerr.V("group", groupName))
	}

	var upns []string
	next := "/groups/" + groups.Value[0].ID + "/members?$select=userPrincipalName"
	for next != "" {
		var page struct {
			NextLink string `json:"@odata.nextLink"`
			Value    []struct {
				UserPrincipalName string `json:"userPrincipalName"`
			} `json:"value"`
		}
		if err := c.get(ctx, next, &page); err != nil {
			return nil, goerr.Wrap(err, "failed to list group members", goerr.V("group", groupName))
		}
		for _, member := range page.Value {
			if member.UserPrincipalName != "" {
				upns = append(upns, member.UserPrincipalName)
			}
		}
		next = page.NextLink
	}
	return upns, nil
}

// odataQuote wraps s as an OData string literal, doubling embedded quotes
func odataQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
