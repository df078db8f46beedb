// Package api serves the Credora entities over a read-only REST API.
// @title Credora Indexer API
// @version 1.0
// @description REST API for querying credit scores, permissions and protocol activity indexed from the Credora contracts
// @contact.name API Support
// @contact.url https://github.com/credora/indexer
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /
// @schemes http https
package api
