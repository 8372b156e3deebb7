/*
Package widgetsdk is the Go client for the checkout widget service, used by
merchant back ends.

A merchant back end holds a client id and client secret. Before rendering its
checkout page it asks the service for a session and embeds the returned
widget URL in an iframe:

	client := widgetsdk.NewSDKClient("https://widget.example.com")

	session, err := client.CreateSession(ctx, clientID, clientSecret)
	if err != nil {
		return err
	}

	// <iframe src="{{ session.WidgetURL }}"></iframe>

The widget only loads when the page embedding it is served from one of the
client's allowed origins. It reports the outcome to the parent window with
postMessage; the message data has the shape of Event.

Errors returned by the service are *APIError values and can be compared with
errors.Is against the predefined errors:

	if errors.Is(err, widgetsdk.ErrInvalidClient) {
		// wrong id or secret
	}
*/
package widgetsdk
