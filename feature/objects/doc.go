// Package objects exposes the storage facade over HTTP.
//
// Every route lives under /objects and addresses keys of the single bucket
// the facade was built with. Keys are passed as the key query parameter so
// that slashes inside keys need no escaping.
//
// # Endpoints
//
//   - GET    /objects?prefix=        list keys
//   - DELETE /objects?key=           delete an object
//   - GET    /objects/exists?key=    existence check
//   - GET    /objects/metadata?key=  user metadata, 404 when absent
//   - GET    /objects/size?key=      content length
//   - GET    /objects/presign?key=   presigned download URL
//   - GET    /objects/value?key=     stored JSON document
//   - PUT    /objects/value?key=     store a JSON document
//   - POST   /objects/move           copy then delete
//   - POST   /objects/wait?key=      block until the key exists
//   - POST   /objects/keys           generate a date partitioned key
//
// Facade failures map to status codes by kind: not found 404, invalid
// operation 400, unparsable item 422, callout 502. A wait that runs out of
// time answers 504.
package objects
