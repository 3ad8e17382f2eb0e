// Package civiclient creates configured CiviCRM API clients.
//
// It is the composition root tying pkg/civi's dispatch layer to a concrete
// transport:
//
//	api, err := civiclient.New(&civi.Config{
//		Endpoint: "https://example.org",
//		APIKey:   "your-api-key",
//		SiteKey:  "your-site-key",
//		Version:  civi.V3,
//	})
//
// For installations reachable only on the local machine (or inside a
// container), the console transport drives the cv tool instead:
//
//	api, err := civiclient.New(&civi.Config{
//		Version:    civi.V4,
//		Transport:  civi.TransportConsole,
//		Executable: "/usr/local/bin/cv",
//		WorkDir:    "/var/www/civicrm",
//	})
package civiclient
