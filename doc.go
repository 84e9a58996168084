/*
Package cors provides pipeline middleware for
[Cross-Origin Resource Sharing (CORS)].

The middleware polices cross-origin requests against a configured
allow-list of origins and methods, answers allowed [CORS-preflight
requests] itself, and decorates outgoing responses with the
Access-Control-* headers that advertise the configured policy. It is meant
to sit early in a request-processing pipeline (see package
[github.com/restfilter/cors/pipeline]), ahead of routing, authentication,
and business logic.

Origins are matched by exact string comparison (or the wildcard "*"); this
package performs no pattern matching of any kind on origins. Configuration
is deliberately forgiving: construction never fails, whatever the options.
Run your options through [CheckOptions] if you want likely mistakes
surfaced.

Care is required for CORS middleware to work as intended.
Be particularly wary of negative interference from other software
components that play a role in processing requests and composing their
responses, including intermediaries (proxies and gateways), routers, other
filters in the pipeline, and the ultimate handler. Follow the rules listed
below:

  - Because [CORS-preflight requests] use [OPTIONS] as their method,
    you [SHOULD NOT] prevent OPTIONS requests from reaching your CORS
    middleware. Otherwise, preflight requests will not get properly
    handled and browser-based clients will likely experience CORS-related
    errors.
  - Because [CORS-preflight requests are not authenticated],
    authentication [SHOULD NOT] take place "ahead of" a CORS middleware
    (e.g. in a reverse proxy or in some filter further up the pipeline).
    However, a CORS middleware [MAY] sit upstream of an authentication
    filter.
  - Intermediaries [SHOULD NOT] alter or augment the [CORS response
    headers] that are set by this library's middleware.
  - Multiple CORS middleware [MUST NOT] be stacked.

[CORS response headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#the_http_response_headers
[CORS-preflight requests are not authenticated]: https://fetch.spec.whatwg.org/#cors-protocol-and-credentials
[CORS-preflight requests]: https://developer.mozilla.org/en-US/docs/Glossary/Preflight_request
[Cross-Origin Resource Sharing (CORS)]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS
[MAY]: https://www.ietf.org/rfc/rfc2119.txt
[MUST NOT]: https://www.ietf.org/rfc/rfc2119.txt
[OPTIONS]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Methods/OPTIONS
[SHOULD NOT]: https://www.ietf.org/rfc/rfc2119.txt
*/
package cors
