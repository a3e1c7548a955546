// Package formats loads and saves mesh files for transformation.
//
// Every codec exposes a file's positions and normals as a mesh.Mesh and
// writes everything else back unchanged: faces, indices, groups, materials,
// headers and comments.
//
// Supported formats: STL (ASCII and binary), Wavefront OBJ, OFF/NOFF/COFF.
package formats
