// Package redis connects to the Redis server backing the session store.
//
// Connect parses a redis:// URL, pings the server and retries until it
// answers or the connect timeout elapses. Healthcheck returns a probe for
// the HTTP server's readiness endpoint.
//
//	client, err := redis.Connect(ctx, cfg, redis.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
