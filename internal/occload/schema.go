package occload

import "github.com/invopop/jsonschema"

// BuildSchema reflects FileDefinitions into a JSON Schema document for
// editor tooling and designer-facing validation, the same role the
// teacher's effect catalog schema plays for its own authored config.
func BuildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(FileDefinitions))
	schema.Title = "Culling Occluder Geometry"
	schema.Description = "Static convex cuboid and sphere occluders loaded once at startup by the line-of-sight culling engine."
	return schema
}
